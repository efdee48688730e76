package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/fxledger/backend/src/logger"
	"github.com/username/fxledger/backend/src/models"
	"github.com/username/fxledger/backend/src/parsers"
	"github.com/username/fxledger/backend/src/processors"

	// Register the file-type parsers with the registry.
	_ "github.com/username/fxledger/backend/src/parsers/csvfile"
	_ "github.com/username/fxledger/backend/src/parsers/xlsxfile"
)

type importServiceImpl struct {
	normalizer *processors.RowNormalizer
	resolver   ReferenceResolver
	committer  TransactionCommitter
	runCache   *cache.Cache
	runTTL     time.Duration
}

func NewImportService(
	normalizer *processors.RowNormalizer,
	resolver ReferenceResolver,
	committer TransactionCommitter,
	runCache *cache.Cache,
	runTTL time.Duration,
) ImportService {
	return &importServiceImpl{
		normalizer: normalizer,
		resolver:   resolver,
		committer:  committer,
		runCache:   runCache,
		runTTL:     runTTL,
	}
}

func runCacheKey(userID int64, runID string) string {
	return fmt.Sprintf("import_run_user_%d_%s", userID, runID)
}

// ProcessImport executes the upload half of the pipeline: decode, resolve
// references once for the whole file, normalize every row, partition. The
// resulting run is cached for review and a later commit; nothing is
// persisted here.
func (s *importServiceImpl) ProcessImport(ctx context.Context, fileReader io.Reader, userID int64, fileType, filename string, filesize int64) (*ImportRun, error) {
	startTime := time.Now()
	logger.L.Info("ProcessImport START", "userID", userID, "filename", filename, "fileType", fileType)

	parser, err := parsers.GetParser(fileType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	rawRows, err := parser.Parse(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	contactNames, accountNames := processors.CollectReferenceNames(rawRows)
	refs, err := s.resolver.Resolve(ctx, contactNames, accountNames)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResolutionFailed, err)
	}

	rows := s.normalizer.NormalizeAll(rawRows, refs)
	partition := processors.PartitionRows(rows)

	run := &ImportRun{
		ID:        uuid.NewString(),
		UserID:    userID,
		Filename:  filename,
		FileSize:  filesize,
		Rows:      rows,
		Partition: partition,
		CreatedAt: time.Now(),
	}
	s.runCache.Set(runCacheKey(userID, run.ID), run, s.runTTL)

	logger.L.Info("ProcessImport END",
		"userID", userID,
		"runID", run.ID,
		"totalRows", partition.Summary.TotalRows,
		"validRows", partition.Summary.ValidCount,
		"invalidRows", partition.Summary.InvalidCount,
		"duration", time.Since(startTime),
	)
	return run, nil
}

// GetRun fetches a cached, not-yet-committed run.
func (s *importServiceImpl) GetRun(userID int64, runID string) (*ImportRun, bool) {
	cached, found := s.runCache.Get(runCacheKey(userID, runID))
	if !found {
		return nil, false
	}
	return cached.(*ImportRun), true
}

// CommitRun submits a run's valid rows as one batch. An empty valid set is a
// zero-row no-op that never reaches the committer. On failure the run stays
// cached so the operator can retry without re-normalizing; on success it is
// evicted.
func (s *importServiceImpl) CommitRun(ctx context.Context, userID int64, runID string) (*CommitResult, error) {
	run, found := s.GetRun(userID, runID)
	if !found {
		return nil, ErrRunNotFound
	}

	valid := run.Partition.Valid
	if len(valid) == 0 {
		logger.L.Info("CommitRun: nothing to commit", "userID", userID, "runID", runID)
		return &CommitResult{Committed: 0}, nil
	}

	commitRecords := make([]models.CommitRecord, 0, len(valid))
	for _, row := range valid {
		commitRecords = append(commitRecords, row.ToCommitRecord())
	}

	meta := ImportMeta{
		Filename: run.Filename,
		FileSize: run.FileSize,
		Summary:  run.Partition.Summary,
	}
	count, err := s.committer.Commit(ctx, userID, commitRecords, meta)
	if err != nil {
		logger.L.Error("CommitRun: batch commit failed", "userID", userID, "runID", runID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	s.runCache.Delete(runCacheKey(userID, runID))
	logger.L.Info("CommitRun: batch committed", "userID", userID, "runID", runID, "count", count)
	return &CommitResult{Committed: count}, nil
}

// DiscardRun drops a pending run with no external effect.
func (s *importServiceImpl) DiscardRun(userID int64, runID string) {
	s.runCache.Delete(runCacheKey(userID, runID))
	logger.L.Info("Import run discarded", "userID", userID, "runID", runID)
}

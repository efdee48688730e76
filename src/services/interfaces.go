package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/username/fxledger/backend/src/models"
	"github.com/username/fxledger/backend/src/processors"
)

// Define common service errors. Each marks a run-fatal stage failure; row
// level validation problems never surface here.
var (
	ErrParsingFailed    = errors.New("import file parsing failed")
	ErrResolutionFailed = errors.New("reference resolution failed")
	ErrCommitFailed     = errors.New("transaction commit failed")
	ErrRunNotFound      = errors.New("import run not found or expired")
)

// ImportRun holds the outcome of one upload: the full normalized row set,
// its valid/invalid partition and summary. It stays cached until the
// operator commits or discards it, or the TTL expires. Runs are independent
// of each other; a new upload never touches an existing run.
type ImportRun struct {
	ID        string                     `json:"run_id"`
	UserID    int64                      `json:"-"`
	Filename  string                     `json:"filename"`
	FileSize  int64                      `json:"file_size"`
	Rows      []models.NormalizedRow     `json:"rows"`
	Partition processors.PartitionResult `json:"partition"`
	CreatedAt time.Time                  `json:"created_at"`
}

// ImportMeta carries the audit-trail fields the committer records alongside
// a successful batch.
type ImportMeta struct {
	Filename string
	FileSize int64
	Summary  models.ImportSummary
}

// CommitResult reports how many records a commit persisted. A failed batch
// call returns an error instead and persists nothing.
type CommitResult struct {
	Committed int `json:"committed"`
}

// ReferenceResolver resolves human-entered display names to canonical
// identifiers. Names with no match are absent from the returned map; only a
// failed call itself is an error.
type ReferenceResolver interface {
	Resolve(ctx context.Context, contactNames, accountNames []string) (models.ReferenceMap, error)
}

// TransactionCommitter persists a batch of commit records atomically.
// A returned error means zero records were committed.
type TransactionCommitter interface {
	Commit(ctx context.Context, userID int64, records []models.CommitRecord, meta ImportMeta) (int, error)
}

// ImportService defines the interface for the bulk import pipeline.
type ImportService interface {
	ProcessImport(ctx context.Context, fileReader io.Reader, userID int64, fileType, filename string, filesize int64) (*ImportRun, error)
	GetRun(userID int64, runID string) (*ImportRun, bool)
	CommitRun(ctx context.Context, userID int64, runID string) (*CommitResult, error)
	DiscardRun(userID int64, runID string)
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/username/fxledger/backend/src/config"
	"github.com/username/fxledger/backend/src/database"
	"github.com/username/fxledger/backend/src/logger"
	"github.com/username/fxledger/backend/src/model"
	"github.com/username/fxledger/backend/src/models"
	"github.com/username/fxledger/backend/src/security/validation"
	"github.com/username/fxledger/backend/src/services"
	"github.com/username/fxledger/backend/src/utils"
)

type ImportHandler struct {
	importService   services.ImportService
	templateService *services.TemplateService
}

func NewImportHandler(importService services.ImportService, templateService *services.TemplateService) *ImportHandler {
	return &ImportHandler{
		importService:   importService,
		templateService: templateService,
	}
}

// uploadResponse is the operator-facing result of one upload: the run
// handle, aggregate counts, and every row with its full error list.
type uploadResponse struct {
	RunID    string                 `json:"run_id"`
	Filename string                 `json:"filename"`
	Summary  models.ImportSummary   `json:"summary"`
	Rows     []models.NormalizedRow `json:"rows"`
}

func (h *ImportHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to process upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	fileType, err := validation.SniffFileContent(file)
	if err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctxLogger.Info("Processing import upload", "filename", fileHeader.Filename, "fileType", fileType, "size", fileHeader.Size)

	run, err := h.importService.ProcessImport(r.Context(), file, userID, fileType, fileHeader.Filename, fileHeader.Size)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrParsingFailed):
			ctxLogger.Warn("Import file could not be decoded", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, services.ErrResolutionFailed):
			ctxLogger.Error("Reference resolution failed", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "Reference resolution failed, import aborted", http.StatusBadGateway)
		default:
			ctxLogger.Error("Import processing failed", "filename", fileHeader.Filename, "error", err)
			utils.SendJSONError(w, "Import processing failed", http.StatusInternalServerError)
		}
		return
	}

	resp := uploadResponse{
		RunID:    run.ID,
		Filename: run.Filename,
		Summary:  run.Partition.Summary,
		Rows:     run.Rows,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		ctxLogger.Error("Error encoding JSON response for import upload", "error", err)
	}
}

func (h *ImportHandler) HandleCommit(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	ctxLogger := logger.FromContext(r.Context())
	runID := chi.URLParam(r, "runID")

	result, err := h.importService.CommitRun(r.Context(), userID, runID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRunNotFound):
			ctxLogger.Warn("Commit requested for unknown or expired run", "runID", runID)
			utils.SendJSONError(w, "Import run not found or expired; re-upload the file", http.StatusNotFound)
		case errors.Is(err, services.ErrCommitFailed):
			// The run stays cached so the operator can retry the commit.
			ctxLogger.Error("Batch commit failed", "runID", runID, "error", err)
			utils.SendJSONError(w, "Commit failed, no transactions were imported", http.StatusInternalServerError)
		default:
			ctxLogger.Error("Commit failed", "runID", runID, "error", err)
			utils.SendJSONError(w, "Commit failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		ctxLogger.Error("Error encoding JSON response for commit result", "error", err)
	}
}

func (h *ImportHandler) HandleDiscard(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	runID := chi.URLParam(r, "runID")
	h.importService.DiscardRun(userID, runID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ImportHandler) HandleGetTemplate(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	buf, err := h.templateService.BuildImportTemplate()
	if err != nil {
		ctxLogger.Error("Failed to generate import template", "error", err)
		utils.SendJSONError(w, "Failed to generate import template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="fxledger_import_template.xlsx"`)
	if _, err := w.Write(buf.Bytes()); err != nil {
		ctxLogger.Error("Failed to write import template response", "error", err)
	}
}

func (h *ImportHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}
	ctxLogger := logger.FromContext(r.Context())

	entries, err := model.ListImportHistory(database.DB, userID)
	if err != nil {
		ctxLogger.Error("Failed to list import history", "error", err)
		utils.SendJSONError(w, "Failed to retrieve import history", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.ImportHistoryEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		ctxLogger.Error("Error encoding JSON response for import history", "error", err)
	}
}

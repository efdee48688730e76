package model

import (
	"database/sql"

	"github.com/username/fxledger/backend/src/models"
)

// ListImportHistory returns the committed-import audit trail for one user,
// newest first.
func ListImportHistory(db *sql.DB, userID int64) ([]models.ImportHistoryEntry, error) {
	query := `
		SELECT id, user_id, filename, file_size, valid_count, invalid_count, created_at
		FROM import_history
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`
	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []models.ImportHistoryEntry
	for rows.Next() {
		var e models.ImportHistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Filename, &e.FileSize, &e.ValidCount, &e.InvalidCount, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

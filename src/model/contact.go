package model

import (
	"database/sql"
	"strings"
	"time"

	"github.com/username/fxledger/backend/src/models"
)

// GetContactIDsByNames retrieves contact identifiers for a batch of display
// names in a single query. It returns a map keyed by name; names with no
// matching contact are simply absent from the result.
func GetContactIDsByNames(db *sql.DB, names []string) (map[string]string, error) {
	ids := make(map[string]string)
	if len(names) == 0 {
		return ids, nil
	}
	// Using `IN` clause is efficient for batch lookups.
	query := `SELECT name, id FROM contacts WHERE name IN (?` + strings.Repeat(",?", len(names)-1) + `)`
	args := make([]interface{}, len(names))
	for i, name := range names {
		args[i] = name
	}
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name, id string
		if err := rows.Scan(&name, &id); err != nil {
			return nil, err
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

// InsertContact inserts a single contact.
func InsertContact(db *sql.DB, contact models.Contact) error {
	query := `INSERT INTO contacts (id, name, created_at) VALUES (?, ?, ?)`
	_, err := db.Exec(query, contact.ID, contact.Name, time.Now())
	return err
}

package model

import (
	"database/sql"
	"strings"
	"time"

	"github.com/username/fxledger/backend/src/models"
)

// GetAccountIDsByNames retrieves receiving-account identifiers for a batch of
// display names in a single query, mirroring GetContactIDsByNames.
func GetAccountIDsByNames(db *sql.DB, names []string) (map[string]string, error) {
	ids := make(map[string]string)
	if len(names) == 0 {
		return ids, nil
	}
	query := `SELECT name, id FROM receiving_accounts WHERE name IN (?` + strings.Repeat(",?", len(names)-1) + `)`
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

// InsertReceivingAccount inserts a single receiving account.
func InsertReceivingAccount(db *sql.DB, account models.ReceivingAccount) error {
	query := `INSERT INTO receiving_accounts (id, name, account_type, created_at) VALUES (?, ?, ?, ?)`
	_, err := db.Exec(query, account.ID, account.Name, account.AccountType, time.Now())
	return err
}

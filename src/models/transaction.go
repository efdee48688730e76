package models

import "time"

// Contact is a named external party referenced by transactions.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ReceivingAccount is an internal account designated to receive
// foreign-currency inflows.
type ReceivingAccount struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	AccountType string    `json:"account_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// ImportHistoryEntry records one committed bulk import.
type ImportHistoryEntry struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"file_size"`
	ValidCount   int       `json:"valid_count"`
	InvalidCount int       `json:"invalid_count"`
	CreatedAt    time.Time `json:"created_at"`
}

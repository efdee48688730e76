package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/username/fxledger/backend/src/models"
)

// transactionCommitterImpl persists import batches. The whole batch plus its
// history row share one database transaction, so a failure leaves no trace.
type transactionCommitterImpl struct {
	db *sql.DB
}

func NewTransactionCommitter(db *sql.DB) TransactionCommitter {
	return &transactionCommitterImpl{db: db}
}

func (c *transactionCommitterImpl) Commit(ctx context.Context, userID int64, records []models.CommitRecord, meta ImportMeta) (int, error) {
	dbTx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `INSERT INTO transactions
		(id, user_id, contact_id, receiving_account_id, account_type, currency,
		amount, exchange_rate, amount_bdt, transaction_date, transaction_id, note, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			uuid.NewString(), userID, rec.ContactID, rec.ReceivingAccountID, rec.AccountType, rec.Currency,
			rec.Amount, rec.ExchangeRate, rec.AmountBDT, rec.TransactionDate, nullableString(rec.TransactionID), rec.Note, rec.Status,
		)
		if err != nil {
			return 0, fmt.Errorf("error inserting transaction (date %s, contact %s): %w", rec.TransactionDate, rec.ContactID, err)
		}
	}

	_, err = dbTx.ExecContext(ctx, `
		INSERT INTO import_history (user_id, filename, file_size, valid_count, invalid_count)
		VALUES (?, ?, ?, ?, ?)`,
		userID, meta.Filename, meta.FileSize, meta.Summary.ValidCount, meta.Summary.InvalidCount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record import in history: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing transactions: %w", err)
	}
	return len(records), nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

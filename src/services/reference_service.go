package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/username/fxledger/backend/src/model"
	"github.com/username/fxledger/backend/src/models"
)

// referenceResolverImpl resolves names against the contacts and
// receiving_accounts tables with one batched query per entity kind.
type referenceResolverImpl struct {
	db *sql.DB
}

func NewReferenceResolver(db *sql.DB) ReferenceResolver {
	return &referenceResolverImpl{db: db}
}

// Resolve builds the run's ReferenceMap. Both lookups run once per import
// run; per-row resolution afterwards is a map read.
func (r *referenceResolverImpl) Resolve(ctx context.Context, contactNames, accountNames []string) (models.ReferenceMap, error) {
	refs := models.ReferenceMap{
		Contacts: map[string]string{},
		Accounts: map[string]string{},
	}
	if err := ctx.Err(); err != nil {
		return refs, err
	}

	contacts, err := model.GetContactIDsByNames(r.db, contactNames)
	if err != nil {
		return refs, fmt.Errorf("resolving contact names: %w", err)
	}
	accounts, err := model.GetAccountIDsByNames(r.db, accountNames)
	if err != nil {
		return refs, fmt.Errorf("resolving account names: %w", err)
	}

	refs.Contacts = contacts
	refs.Accounts = accounts
	return refs, nil
}

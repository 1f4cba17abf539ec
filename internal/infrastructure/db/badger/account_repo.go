package badgerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type accountRepository struct {
	store *badgerhold.Store
}

func (r *accountRepository) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	var account domain.Account
	err := view(ctx, r.store, func(tx *badger.Txn) error {
		return r.store.TxGet(tx, id, &account)
	})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}
	account.Id = id
	return &account, nil
}

func (r *accountRepository) Upsert(ctx context.Context, account domain.Account) error {
	if err := update(ctx, r.store, func(tx *badger.Txn) error {
		return r.store.TxUpsert(tx, account.Id, account)
	}); err != nil {
		return fmt.Errorf("failed to upsert account %s: %w", account.Id, err)
	}
	return nil
}

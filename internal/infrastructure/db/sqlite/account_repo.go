package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lastclick-network/lastclick/internal/core/domain"
)

const (
	selectAccount = `SELECT balance FROM account WHERE id = ?`
	upsertAccount = `
INSERT INTO account (id, balance) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET balance = EXCLUDED.balance`
)

type accountRepository struct {
	db *sql.DB
}

func (r *accountRepository) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	var balance int64
	err := conn(ctx, r.db).QueryRowContext(ctx, selectAccount, id).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}
	return &domain.Account{Id: id, Balance: fromSqlInt(balance)}, nil
}

func (r *accountRepository) Upsert(ctx context.Context, account domain.Account) error {
	if _, err := conn(ctx, r.db).ExecContext(
		ctx, upsertAccount, account.Id, toSqlInt(account.Balance),
	); err != nil {
		return fmt.Errorf("failed to upsert account %s: %w", account.Id, err)
	}
	return nil
}

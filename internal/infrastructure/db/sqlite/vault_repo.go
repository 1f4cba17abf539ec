package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lastclick-network/lastclick/internal/core/domain"
)

const (
	selectVault = `
SELECT round_id, owner, balance, stake_amount, claimed_by, claimed_at
FROM vault WHERE round_id = ?`
	upsertVault = `
INSERT INTO vault (round_id, owner, balance, stake_amount, claimed_by, claimed_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(round_id) DO UPDATE SET
    owner = EXCLUDED.owner,
    balance = EXCLUDED.balance,
    stake_amount = EXCLUDED.stake_amount,
    claimed_by = EXCLUDED.claimed_by,
    claimed_at = EXCLUDED.claimed_at`
)

type vaultRepository struct {
	db *sql.DB
}

func (r *vaultRepository) AddOrUpdateVault(ctx context.Context, vault domain.Vault) error {
	if _, err := conn(ctx, r.db).ExecContext(
		ctx, upsertVault,
		toSqlInt(vault.RoundId),
		vault.Owner,
		toSqlInt(vault.Balance),
		toSqlInt(vault.StakeAmount),
		toNullString(vault.ClaimedBy),
		toNullInt64(vault.ClaimedAt),
	); err != nil {
		return fmt.Errorf("failed to upsert vault %d: %w", vault.RoundId, err)
	}
	return nil
}

func (r *vaultRepository) GetVaultWithRoundId(
	ctx context.Context, roundId uint64,
) (*domain.Vault, error) {
	var (
		id, balance, stakeAmount int64
		owner                    string
		claimedBy                sql.NullString
		claimedAt                sql.NullInt64
	)
	err := conn(ctx, r.db).QueryRowContext(ctx, selectVault, toSqlInt(roundId)).
		Scan(&id, &owner, &balance, &stakeAmount, &claimedBy, &claimedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrVaultNotFound, roundId)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vault %d: %w", roundId, err)
	}

	return &domain.Vault{
		RoundId:     fromSqlInt(id),
		Owner:       owner,
		Balance:     fromSqlInt(balance),
		StakeAmount: fromSqlInt(stakeAmount),
		ClaimedBy:   fromNullString(claimedBy),
		ClaimedAt:   fromNullInt64(claimedAt),
	}, nil
}

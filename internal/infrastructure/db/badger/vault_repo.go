package badgerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type vaultDTO struct {
	RoundId     uint64
	Owner       string
	Balance     uint64
	StakeAmount uint64
	ClaimedBy   string
	ClaimedAt   int64
	Claimed     bool
}

type vaultRepository struct {
	store *badgerhold.Store
}

func (r *vaultRepository) AddOrUpdateVault(ctx context.Context, vault domain.Vault) error {
	claimedBy, claimed := fromStringPtr(vault.ClaimedBy)
	claimedAt, _ := fromInt64Ptr(vault.ClaimedAt)
	dto := vaultDTO{
		RoundId:     vault.RoundId,
		Owner:       vault.Owner,
		Balance:     vault.Balance,
		StakeAmount: vault.StakeAmount,
		ClaimedBy:   claimedBy,
		ClaimedAt:   claimedAt,
		Claimed:     claimed,
	}
	if err := update(ctx, r.store, func(tx *badger.Txn) error {
		return r.store.TxUpsert(tx, domain.VaultKey(vault.RoundId), dto)
	}); err != nil {
		return fmt.Errorf("failed to upsert vault %d: %w", vault.RoundId, err)
	}
	return nil
}

func (r *vaultRepository) GetVaultWithRoundId(
	ctx context.Context, roundId uint64,
) (*domain.Vault, error) {
	var dto vaultDTO
	err := view(ctx, r.store, func(tx *badger.Txn) error {
		return r.store.TxGet(tx, domain.VaultKey(roundId), &dto)
	})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", domain.ErrVaultNotFound, roundId)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vault %d: %w", roundId, err)
	}

	return &domain.Vault{
		RoundId:     dto.RoundId,
		Owner:       dto.Owner,
		Balance:     dto.Balance,
		StakeAmount: dto.StakeAmount,
		ClaimedBy:   toStringPtr(dto.ClaimedBy, dto.Claimed),
		ClaimedAt:   toInt64Ptr(dto.ClaimedAt, dto.Claimed),
	}, nil
}

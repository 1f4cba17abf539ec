package badgerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type registryDTO struct {
	Operator       string
	NextRoundId    uint64
	ActiveRoundId  uint64
	HasActiveRound bool
}

type registryRepository struct {
	store *badgerhold.Store
}

func (r *registryRepository) Get(ctx context.Context) (*domain.Registry, error) {
	var dto registryDTO
	err := view(ctx, r.store, func(tx *badger.Txn) error {
		return r.store.TxGet(tx, domain.RegistryKey, &dto)
	})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registry: %w", err)
	}

	return &domain.Registry{
		Operator:      dto.Operator,
		NextRoundId:   dto.NextRoundId,
		ActiveRoundId: toUint64Ptr(dto.ActiveRoundId, dto.HasActiveRound),
	}, nil
}

func (r *registryRepository) Upsert(ctx context.Context, registry domain.Registry) error {
	activeRoundId, hasActiveRound := fromUint64Ptr(registry.ActiveRoundId)
	dto := registryDTO{
		Operator:       registry.Operator,
		NextRoundId:    registry.NextRoundId,
		ActiveRoundId:  activeRoundId,
		HasActiveRound: hasActiveRound,
	}
	if err := update(ctx, r.store, func(tx *badger.Txn) error {
		return r.store.TxUpsert(tx, domain.RegistryKey, dto)
	}); err != nil {
		return fmt.Errorf("failed to upsert registry: %w", err)
	}
	return nil
}

package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type roundDTO struct {
	Id                uint64
	Leader            string
	HasLeader         bool
	ClickCount        uint64
	IsActive          bool
	HasEnded          bool
	LastActionTime    int64
	HasLastActionTime bool
	Duration          int64
	CreatedAt         int64
	EndedAt           int64
	HasEndedAt        bool
	Version           uint
}

type roundRepository struct {
	store *badgerhold.Store
}

func (r *roundRepository) AddOrUpdateRound(ctx context.Context, round domain.Round) error {
	dto := toRoundDTO(round)
	if err := update(ctx, r.store, func(tx *badger.Txn) error {
		return r.store.TxUpsert(tx, domain.RoundKey(round.Id), dto)
	}); err != nil {
		return fmt.Errorf("failed to upsert round %d: %w", round.Id, err)
	}
	return nil
}

func (r *roundRepository) GetRoundWithId(ctx context.Context, id uint64) (*domain.Round, error) {
	var dto roundDTO
	err := view(ctx, r.store, func(tx *badger.Txn) error {
		return r.store.TxGet(tx, domain.RoundKey(id), &dto)
	})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", domain.ErrRoundNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round %d: %w", id, err)
	}
	round := dto.toDomain()
	return &round, nil
}

func (r *roundRepository) GetRounds(ctx context.Context) ([]domain.Round, error) {
	var dtos []roundDTO
	if err := view(ctx, r.store, func(tx *badger.Txn) error {
		return r.store.TxFind(tx, &dtos, &badgerhold.Query{})
	}); err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	sort.SliceStable(dtos, func(i, j int) bool {
		return dtos[i].Id < dtos[j].Id
	})
	rounds := make([]domain.Round, 0, len(dtos))
	for _, dto := range dtos {
		rounds = append(rounds, dto.toDomain())
	}
	return rounds, nil
}

func toRoundDTO(round domain.Round) roundDTO {
	leader, hasLeader := fromStringPtr(round.Leader)
	lastActionTime, hasLastActionTime := fromInt64Ptr(round.LastActionTime)
	endedAt, hasEndedAt := fromInt64Ptr(round.EndedAt)
	return roundDTO{
		Id:                round.Id,
		Leader:            leader,
		HasLeader:         hasLeader,
		ClickCount:        round.ClickCount,
		IsActive:          round.IsActive,
		HasEnded:          round.HasEnded,
		LastActionTime:    lastActionTime,
		HasLastActionTime: hasLastActionTime,
		Duration:          round.Duration,
		CreatedAt:         round.CreatedAt,
		EndedAt:           endedAt,
		HasEndedAt:        hasEndedAt,
		Version:           round.Version,
	}
}

func (d roundDTO) toDomain() domain.Round {
	return domain.Round{
		Id:             d.Id,
		Leader:         toStringPtr(d.Leader, d.HasLeader),
		ClickCount:     d.ClickCount,
		IsActive:       d.IsActive,
		HasEnded:       d.HasEnded,
		LastActionTime: toInt64Ptr(d.LastActionTime, d.HasLastActionTime),
		Duration:       d.Duration,
		CreatedAt:      d.CreatedAt,
		EndedAt:        toInt64Ptr(d.EndedAt, d.HasEndedAt),
		Version:        d.Version,
	}
}

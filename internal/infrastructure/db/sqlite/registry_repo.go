package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lastclick-network/lastclick/internal/core/domain"
)

const (
	selectRegistry = `SELECT operator, next_round_id, active_round_id FROM registry WHERE id = ?`
	upsertRegistry = `
INSERT INTO registry (id, operator, next_round_id, active_round_id) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    operator = EXCLUDED.operator,
    next_round_id = EXCLUDED.next_round_id,
    active_round_id = EXCLUDED.active_round_id`
)

type registryRepository struct {
	db *sql.DB
}

func (r *registryRepository) Get(ctx context.Context) (*domain.Registry, error) {
	var (
		operator      string
		nextRoundId   int64
		activeRoundId sql.NullInt64
	)
	err := conn(ctx, r.db).QueryRowContext(ctx, selectRegistry, domain.RegistryKey).
		Scan(&operator, &nextRoundId, &activeRoundId)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registry: %w", err)
	}

	registry := &domain.Registry{
		Operator:    operator,
		NextRoundId: fromSqlInt(nextRoundId),
	}
	if activeRoundId.Valid {
		id := fromSqlInt(activeRoundId.Int64)
		registry.ActiveRoundId = &id
	}
	return registry, nil
}

func (r *registryRepository) Upsert(ctx context.Context, registry domain.Registry) error {
	var activeRoundId sql.NullInt64
	if registry.ActiveRoundId != nil {
		activeRoundId = sql.NullInt64{Int64: toSqlInt(*registry.ActiveRoundId), Valid: true}
	}
	if _, err := conn(ctx, r.db).ExecContext(
		ctx, upsertRegistry,
		domain.RegistryKey, registry.Operator, toSqlInt(registry.NextRoundId), activeRoundId,
	); err != nil {
		return fmt.Errorf("failed to upsert registry: %w", err)
	}
	return nil
}

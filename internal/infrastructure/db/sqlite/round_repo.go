package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lastclick-network/lastclick/internal/core/domain"
)

const (
	roundColumns = `id, leader, click_count, is_active, has_ended, last_action_time, duration, created_at, ended_at, version`
	selectRound  = `SELECT ` + roundColumns + ` FROM round WHERE id = ?`
	selectRounds = `SELECT ` + roundColumns + ` FROM round ORDER BY id`
	upsertRound  = `
INSERT INTO round (` + roundColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    leader = EXCLUDED.leader,
    click_count = EXCLUDED.click_count,
    is_active = EXCLUDED.is_active,
    has_ended = EXCLUDED.has_ended,
    last_action_time = EXCLUDED.last_action_time,
    duration = EXCLUDED.duration,
    created_at = EXCLUDED.created_at,
    ended_at = EXCLUDED.ended_at,
    version = EXCLUDED.version`
)

type roundRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *roundRepository) AddOrUpdateRound(ctx context.Context, round domain.Round) error {
	if _, err := conn(ctx, r.db).ExecContext(
		ctx, upsertRound,
		toSqlInt(round.Id),
		toNullString(round.Leader),
		toSqlInt(round.ClickCount),
		round.IsActive,
		round.HasEnded,
		toNullInt64(round.LastActionTime),
		round.Duration,
		round.CreatedAt,
		toNullInt64(round.EndedAt),
		int64(round.Version),
	); err != nil {
		return fmt.Errorf("failed to upsert round %d: %w", round.Id, err)
	}
	return nil
}

func (r *roundRepository) GetRoundWithId(ctx context.Context, id uint64) (*domain.Round, error) {
	row := conn(ctx, r.db).QueryRowContext(ctx, selectRound, toSqlInt(id))
	round, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrRoundNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get round %d: %w", id, err)
	}
	return round, nil
}

func (r *roundRepository) GetRounds(ctx context.Context) ([]domain.Round, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, selectRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	rounds := make([]domain.Round, 0)
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		rounds = append(rounds, *round)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	return rounds, nil
}

func scanRound(row rowScanner) (*domain.Round, error) {
	var (
		id, clickCount, version int64
		leader                  sql.NullString
		isActive, hasEnded      bool
		lastActionTime, endedAt sql.NullInt64
		duration, createdAt     int64
	)
	if err := row.Scan(
		&id, &leader, &clickCount, &isActive, &hasEnded,
		&lastActionTime, &duration, &createdAt, &endedAt, &version,
	); err != nil {
		return nil, err
	}

	return &domain.Round{
		Id:             fromSqlInt(id),
		Leader:         fromNullString(leader),
		ClickCount:     fromSqlInt(clickCount),
		IsActive:       isActive,
		HasEnded:       hasEnded,
		LastActionTime: fromNullInt64(lastActionTime),
		Duration:       duration,
		CreatedAt:      createdAt,
		EndedAt:        fromNullInt64(endedAt),
		Version:        uint(version),
	}, nil
}

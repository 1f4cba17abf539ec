package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/lastclick-network/lastclick/internal/infrastructure/db/codec"
)

const (
	insertEvent = `
INSERT INTO event (id, stream, seq, type, timestamp, payload) VALUES (?, ?, ?, ?, ?, ?)`
	selectEvents = `
SELECT id, stream, seq, type, timestamp, payload FROM event WHERE stream = ? ORDER BY seq`
	selectNextSeq = `SELECT COUNT(*) FROM event WHERE stream = ?`
)

type eventRepository struct {
	db *sql.DB
}

func (r *eventRepository) AddEvents(ctx context.Context, events ...domain.Event) error {
	if len(events) <= 0 {
		return nil
	}

	add := func(q querier) error {
		seqs := make(map[string]uint64)
		for _, event := range events {
			stream := event.Stream()
			if _, ok := seqs[stream]; !ok {
				var count int64
				if err := q.QueryRowContext(ctx, selectNextSeq, stream).Scan(&count); err != nil {
					return err
				}
				seqs[stream] = fromSqlInt(count)
			}

			record, err := codec.EncodeEvent(uuid.New().String(), seqs[stream], event)
			if err != nil {
				return err
			}
			seqs[stream]++

			if _, err := q.ExecContext(
				ctx, insertEvent,
				record.Id, record.Stream, toSqlInt(record.Seq),
				record.Type, record.Timestamp, record.Payload,
			); err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok && tx != nil {
		err = add(tx)
	} else {
		err = execTx(ctx, r.db, func(tx *sql.Tx) error {
			return add(tx)
		})
	}
	if err != nil {
		return fmt.Errorf("failed to add events: %w", err)
	}
	return nil
}

func (r *eventRepository) GetEvents(ctx context.Context, stream string) ([]domain.Event, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, selectEvents, stream)
	if err != nil {
		return nil, fmt.Errorf("failed to get events of %s: %w", stream, err)
	}
	defer rows.Close()

	records := make([]codec.Record, 0)
	for rows.Next() {
		var (
			record codec.Record
			seq    int64
		)
		if err := rows.Scan(
			&record.Id, &record.Stream, &seq, &record.Type, &record.Timestamp, &record.Payload,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		record.Seq = fromSqlInt(seq)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get events of %s: %w", stream, err)
	}

	return codec.DecodeEvents(records)
}

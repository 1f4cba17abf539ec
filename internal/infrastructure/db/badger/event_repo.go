package badgerdb

import (
	"context"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/lastclick-network/lastclick/internal/infrastructure/db/codec"
	"github.com/timshannon/badgerhold/v4"
)

type eventDTO struct {
	Id        string
	Stream    string `badgerhold:"index"`
	Seq       uint64
	Type      string
	Timestamp int64
	Payload   []byte
}

type eventRepository struct {
	store *badgerhold.Store
}

func (r *eventRepository) AddEvents(ctx context.Context, events ...domain.Event) error {
	if len(events) <= 0 {
		return nil
	}

	if err := update(ctx, r.store, func(tx *badger.Txn) error {
		seqs := make(map[string]uint64)
		for _, event := range events {
			stream := event.Stream()
			if _, ok := seqs[stream]; !ok {
				records, err := r.findRecords(tx, stream)
				if err != nil {
					return err
				}
				seqs[stream] = uint64(len(records))
			}

			record, err := codec.EncodeEvent(uuid.New().String(), seqs[stream], event)
			if err != nil {
				return err
			}
			seqs[stream]++

			dto := eventDTO(*record)
			if err := r.store.TxInsert(tx, dto.Id, dto); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to add events: %w", err)
	}
	return nil
}

func (r *eventRepository) GetEvents(ctx context.Context, stream string) ([]domain.Event, error) {
	var records []codec.Record
	if err := view(ctx, r.store, func(tx *badger.Txn) error {
		var err error
		records, err = r.findRecords(tx, stream)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to get events of %s: %w", stream, err)
	}
	return codec.DecodeEvents(records)
}

func (r *eventRepository) findRecords(tx *badger.Txn, stream string) ([]codec.Record, error) {
	var dtos []eventDTO
	query := badgerhold.Where("Stream").Eq(stream).Index("Stream")
	if err := r.store.TxFind(tx, &dtos, query); err != nil {
		return nil, err
	}

	sort.SliceStable(dtos, func(i, j int) bool {
		return dtos[i].Seq < dtos[j].Seq
	})
	records := make([]codec.Record, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, codec.Record(dto))
	}
	return records, nil
}

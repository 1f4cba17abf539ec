package badgerdb

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/timshannon/badgerhold/v4"
)

const (
	maxRetries    = 5
	retryInterval = 100 * time.Millisecond
	gcDiscard     = 0.5
)

type txKey struct{}

func createDB(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}

func txFromContext(ctx context.Context) *badger.Txn {
	tx, _ := ctx.Value(txKey{}).(*badger.Txn)
	return tx
}

// view runs fn in the transaction carried by ctx or in a new read-only one.
func view(ctx context.Context, store *badgerhold.Store, fn func(tx *badger.Txn) error) error {
	if tx := txFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return store.Badger().View(fn)
}

// update runs fn in the transaction carried by ctx or in a new read-write one
// that is retried on conflicts.
func update(ctx context.Context, store *badgerhold.Store, fn func(tx *badger.Txn) error) error {
	if tx := txFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return withRetry(func() error {
		return store.Badger().Update(fn)
	})
}

func withRetry(fn func() error) error {
	err := fn()
	attempts := 1
	for errors.Is(err, badger.ErrConflict) && attempts <= maxRetries {
		time.Sleep(retryInterval)
		err = fn()
		attempts++
	}
	return err
}

// Integers that can legitimately be zero are wrapped so that the gob encoder
// used by badgerhold does not confuse a zero value with a missing one.

func fromUint64Ptr(v *uint64) (uint64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func toUint64Ptr(v uint64, ok bool) *uint64 {
	if !ok {
		return nil
	}
	return &v
}

func fromInt64Ptr(v *int64) (int64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func toInt64Ptr(v int64, ok bool) *int64 {
	if !ok {
		return nil
	}
	return &v
}

func fromStringPtr(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	return *v, true
}

func toStringPtr(v string, ok bool) *string {
	if !ok {
		return nil
	}
	return &v
}

package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/lastclick-network/lastclick/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const storeDir = "store"

type repoManager struct {
	store        *badgerhold.Store
	inMemory     bool
	registryRepo domain.RegistryRepository
	roundRepo    domain.RoundRepository
	vaultRepo    domain.VaultRepository
	accountRepo  domain.AccountRepository
	eventRepo    domain.EventRepository
}

// NewRepoManager opens a single badger store shared by all repositories, so
// that they can take part in the same transaction. An empty base directory
// opens an in-memory store.
func NewRepoManager(config ...interface{}) (ports.RepoManager, error) {
	if len(config) != 2 {
		return nil, fmt.Errorf("invalid config")
	}
	baseDir, ok := config[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid base directory")
	}
	var logger badger.Logger
	if config[1] != nil {
		logger, ok = config[1].(badger.Logger)
		if !ok {
			return nil, fmt.Errorf("invalid logger")
		}
	}

	var dir string
	if len(baseDir) > 0 {
		dir = filepath.Join(baseDir, storeDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %s", err)
	}

	return &repoManager{
		store:        store,
		inMemory:     len(dir) <= 0,
		registryRepo: &registryRepository{store},
		roundRepo:    &roundRepository{store},
		vaultRepo:    &vaultRepository{store},
		accountRepo:  &accountRepository{store},
		eventRepo:    &eventRepository{store},
	}, nil
}

func (m *repoManager) Registry() domain.RegistryRepository {
	return m.registryRepo
}

func (m *repoManager) Rounds() domain.RoundRepository {
	return m.roundRepo
}

func (m *repoManager) Vaults() domain.VaultRepository {
	return m.vaultRepo
}

func (m *repoManager) Accounts() domain.AccountRepository {
	return m.accountRepo
}

func (m *repoManager) Events() domain.EventRepository {
	return m.eventRepo
}

func (m *repoManager) RunInTx(
	ctx context.Context, fn func(ctx context.Context) error,
) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	return withRetry(func() error {
		tx := m.store.Badger().NewTransaction(true)
		defer tx.Discard()

		if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// CollectGarbage runs a value log GC cycle. It is a no-op for in-memory stores.
func (m *repoManager) CollectGarbage() error {
	if m.inMemory {
		return nil
	}
	for {
		err := m.store.Badger().RunValueLogGC(gcDiscard)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *repoManager) Close() {
	m.store.Close()
}

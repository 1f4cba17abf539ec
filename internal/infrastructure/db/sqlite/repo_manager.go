package sqlitedb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/lastclick-network/lastclick/internal/core/ports"
)

type repoManager struct {
	db           *sql.DB
	registryRepo domain.RegistryRepository
	roundRepo    domain.RoundRepository
	vaultRepo    domain.VaultRepository
	accountRepo  domain.AccountRepository
	eventRepo    domain.EventRepository
}

// NewRepoManager expects an already migrated db.
func NewRepoManager(config ...interface{}) (ports.RepoManager, error) {
	if len(config) != 1 {
		return nil, fmt.Errorf("invalid config")
	}
	db, ok := config[0].(*sql.DB)
	if !ok {
		return nil, fmt.Errorf("cannot open repo manager: invalid config, expected db at 0")
	}

	return &repoManager{
		db:           db,
		registryRepo: &registryRepository{db},
		roundRepo:    &roundRepository{db},
		vaultRepo:    &vaultRepository{db},
		accountRepo:  &accountRepository{db},
		eventRepo:    &eventRepository{db},
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
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok && tx != nil {
		return fn(ctx)
	}

	return execTx(ctx, m.db, func(tx *sql.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (m *repoManager) Close() {
	m.db.Close()
}

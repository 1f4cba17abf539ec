package ports

import (
	"context"

	"github.com/lastclick-network/lastclick/internal/core/domain"
)

type RepoManager interface {
	Registry() domain.RegistryRepository
	Rounds() domain.RoundRepository
	Vaults() domain.VaultRepository
	Accounts() domain.AccountRepository
	Events() domain.EventRepository
	// RunInTx runs fn inside a single store transaction. Repositories called
	// with the ctx passed to fn join that transaction, which is committed
	// only if fn returns nil.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	Close()
}

// GarbageCollector is implemented by data stores that need periodic
// maintenance.
type GarbageCollector interface {
	CollectGarbage() error
}

package domain

import "context"

// Repositories join the store transaction carried by ctx when there is one.

type RegistryRepository interface {
	// Get returns nil without error if the registry was never initialized.
	Get(ctx context.Context) (*Registry, error)
	Upsert(ctx context.Context, registry Registry) error
}

type RoundRepository interface {
	AddOrUpdateRound(ctx context.Context, round Round) error
	GetRoundWithId(ctx context.Context, id uint64) (*Round, error)
	GetRounds(ctx context.Context) ([]Round, error)
}

type VaultRepository interface {
	AddOrUpdateVault(ctx context.Context, vault Vault) error
	GetVaultWithRoundId(ctx context.Context, roundId uint64) (*Vault, error)
}

type AccountRepository interface {
	// GetAccount returns nil without error for accounts never credited.
	GetAccount(ctx context.Context, id string) (*Account, error)
	Upsert(ctx context.Context, account Account) error
}

type EventRepository interface {
	AddEvents(ctx context.Context, events ...Event) error
	GetEvents(ctx context.Context, stream string) ([]Event, error)
}

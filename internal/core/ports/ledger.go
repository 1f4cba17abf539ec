package ports

import "context"

// Ledger moves units between custody accounts. Calls made with a ctx carrying
// a store transaction are part of it.
type Ledger interface {
	Balance(ctx context.Context, account string) (uint64, error)
	Transfer(ctx context.Context, from, to string, amount uint64) error
	Credit(ctx context.Context, account string, amount uint64) error
}

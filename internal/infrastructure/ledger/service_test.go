package ledger_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/lastclick-network/lastclick/internal/infrastructure/db"
	"github.com/lastclick-network/lastclick/internal/infrastructure/ledger"
	"github.com/stretchr/testify/require"
)

func TestLedger(t *testing.T) {
	ctx := context.Background()
	repoManager, err := db.NewService(db.ServiceConfig{
		DataStoreType:   "badger",
		DataStoreConfig: []interface{}{"", nil},
	})
	require.NoError(t, err)
	defer repoManager.Close()

	svc := ledger.NewService(repoManager)
	vault := domain.VaultKey(0)

	t.Run("unknown account has zero balance", func(t *testing.T) {
		balance, err := svc.Balance(ctx, "nobody")
		require.NoError(t, err)
		require.Zero(t, balance)
	})

	t.Run("credit and transfer", func(t *testing.T) {
		require.NoError(t, svc.Credit(ctx, "alice", 250))
		require.NoError(t, svc.Transfer(ctx, "alice", vault, 100))
		require.NoError(t, svc.Transfer(ctx, "alice", vault, 100))

		balance, err := svc.Balance(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, uint64(50), balance)

		balance, err = svc.Balance(ctx, vault)
		require.NoError(t, err)
		require.Equal(t, uint64(200), balance)
	})

	t.Run("self transfer", func(t *testing.T) {
		require.ErrorIs(t, svc.Transfer(ctx, "alice", "alice", 50), domain.ErrSelfTransfer)
		require.ErrorIs(t, svc.Transfer(ctx, vault, vault, 100), domain.ErrSelfTransfer)

		balance, err := svc.Balance(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, uint64(50), balance)
	})

	t.Run("invalid", func(t *testing.T) {
		fixtures := []struct {
			name        string
			from, to    string
			amount      uint64
			expectedErr error
		}{
			{"insufficient funds", "alice", vault, 51, domain.ErrInsufficientFunds},
			{"unknown source", "bob", vault, 1, domain.ErrInsufficientFunds},
			{"zero amount", "alice", vault, 0, domain.ErrInvalidAmount},
			{"missing source", "", vault, 1, domain.ErrInvalidIdentity},
			{"missing destination", "alice", "", 1, domain.ErrInvalidIdentity},
			{"same account", "alice", "alice", 1, domain.ErrSelfTransfer},
		}

		for _, f := range fixtures {
			t.Run(f.name, func(t *testing.T) {
				err := svc.Transfer(ctx, f.from, f.to, f.amount)
				require.ErrorIs(t, err, f.expectedErr)
			})
		}

		require.ErrorIs(t, svc.Credit(ctx, "alice", 0), domain.ErrInvalidAmount)
		require.ErrorIs(t, svc.Credit(ctx, "", 1), domain.ErrInvalidIdentity)
		require.ErrorIs(t, svc.Credit(ctx, "alice", math.MaxUint64), domain.ErrAmountOverflow)

		balance, err := svc.Balance(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, uint64(50), balance)
	})

	t.Run("rolls back with the enclosing transaction", func(t *testing.T) {
		errAbort := errors.New("abort")
		err := repoManager.RunInTx(ctx, func(ctx context.Context) error {
			if err := svc.Transfer(ctx, "alice", vault, 50); err != nil {
				return err
			}
			balance, err := svc.Balance(ctx, "alice")
			require.NoError(t, err)
			require.Zero(t, balance)
			return errAbort
		})
		require.ErrorIs(t, err, errAbort)

		balance, err := svc.Balance(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, uint64(50), balance)

		balance, err = svc.Balance(ctx, vault)
		require.NoError(t, err)
		require.Equal(t, uint64(200), balance)
	})
}

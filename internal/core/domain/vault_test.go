package domain_test

import (
	"math"
	"testing"

	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestVault(t *testing.T) {
	t.Run("deposit", func(t *testing.T) {
		vault := &domain.Vault{RoundId: 7, StakeAmount: stakeAmount}
		require.Equal(t, "vault/7", vault.Account())

		require.NoError(t, vault.Deposit(stakeAmount))
		require.NoError(t, vault.Deposit(stakeAmount))
		require.Equal(t, 2*stakeAmount, vault.Balance)

		require.ErrorIs(t, vault.Deposit(stakeAmount-1), domain.ErrIncorrectAmount)
		require.ErrorIs(t, vault.Deposit(0), domain.ErrIncorrectAmount)
		require.Equal(t, 2*stakeAmount, vault.Balance)

		full := &domain.Vault{StakeAmount: stakeAmount, Balance: math.MaxUint64 - 1}
		require.ErrorIs(t, full.Deposit(stakeAmount), domain.ErrAmountOverflow)
	})

	t.Run("claim", func(t *testing.T) {
		vault := &domain.Vault{RoundId: 7, StakeAmount: stakeAmount, Balance: 3 * stakeAmount}

		amount, err := vault.Claim(alice, startTime)
		require.NoError(t, err)
		require.Equal(t, 3*stakeAmount, amount)
		require.Zero(t, vault.Balance)
		require.True(t, vault.IsClaimed())
		require.Equal(t, alice, *vault.ClaimedBy)
		require.Equal(t, startTime, *vault.ClaimedAt)
		require.Len(t, vault.Events(), 1)

		event, ok := vault.Events()[0].(domain.RewardClaimed)
		require.True(t, ok)
		require.Equal(t, uint64(7), event.Id)
		require.Equal(t, 3*stakeAmount, event.Amount)

		amount, err = vault.Claim(alice, startTime+1)
		require.ErrorIs(t, err, domain.ErrNoRewardsInVault)
		require.Zero(t, amount)
		require.Equal(t, startTime, *vault.ClaimedAt)
		require.Len(t, vault.Events(), 1)
	})

	t.Run("check_claim", func(t *testing.T) {
		active := &domain.Round{Id: 1, IsActive: true, Leader: &alice}
		ended := &domain.Round{Id: 1, HasEnded: true, Leader: &alice}
		noLeader := &domain.Round{Id: 1, HasEnded: true}
		funded := &domain.Vault{RoundId: 1, StakeAmount: stakeAmount, Balance: stakeAmount}
		empty := &domain.Vault{RoundId: 1, StakeAmount: stakeAmount}

		fixtures := []struct {
			name        string
			round       *domain.Round
			vault       *domain.Vault
			caller      string
			expectedErr error
		}{
			{"missing identity", ended, funded, "", domain.ErrInvalidIdentity},
			{"missing identity before not ended", active, funded, "", domain.ErrGameNotEnded},
			{"vault account", ended, funded, funded.Account(), domain.ErrReservedAccount},
			{"not ended", active, funded, alice, domain.ErrGameNotEnded},
			{"not ended before leader", active, empty, bob, domain.ErrGameNotEnded},
			{"not last clicker", ended, funded, bob, domain.ErrNotLastClicker},
			{"not last clicker before balance", ended, empty, bob, domain.ErrNotLastClicker},
			{"no leader", noLeader, funded, alice, domain.ErrNotLastClicker},
			{"empty vault", ended, empty, alice, domain.ErrNoRewardsInVault},
		}

		for _, f := range fixtures {
			t.Run(f.name, func(t *testing.T) {
				require.ErrorIs(t, domain.CheckClaim(f.round, f.vault, f.caller), f.expectedErr)
			})
		}

		require.NoError(t, domain.CheckClaim(ended, funded, alice))
	})
}

func TestRegistry(t *testing.T) {
	_, err := domain.NewRegistry("")
	require.ErrorIs(t, err, domain.ErrInvalidIdentity)
	_, err = domain.NewRegistry("   ")
	require.ErrorIs(t, err, domain.ErrInvalidIdentity)
	_, err = domain.NewRegistry(domain.VaultKey(3))
	require.ErrorIs(t, err, domain.ErrReservedAccount)

	registry, err := domain.NewRegistry(operator)
	require.NoError(t, err)
	require.True(t, registry.IsOperator(operator))
	require.False(t, registry.IsOperator(alice))
	require.False(t, registry.IsOperator(""))
	require.False(t, registry.HasActiveRound())
	require.Zero(t, registry.NextRoundId)

	require.Equal(t, "global", domain.RegistryKey)
	require.Equal(t, "round/12", domain.RoundKey(12))
	require.Equal(t, "vault/12", domain.VaultKey(12))
	require.True(t, domain.IsVaultKey(domain.VaultKey(0)))
	require.False(t, domain.IsVaultKey(alice))
}

func TestErrorKind(t *testing.T) {
	fixtures := []struct {
		err  error
		kind domain.ErrorKind
	}{
		{domain.ErrUnauthorized, domain.KindAuthorization},
		{domain.ErrRoundAlreadyActive, domain.KindPrecondition},
		{domain.ErrIncorrectAmount, domain.KindValidation},
		{domain.ErrInsufficientFunds, domain.KindResource},
		{domain.ErrRoundNotFound, domain.KindNotFound},
	}

	for _, f := range fixtures {
		kind, ok := domain.KindOf(f.err)
		require.True(t, ok)
		require.Equal(t, f.kind, kind)
	}

	_, ok := domain.KindOf(nil)
	require.False(t, ok)
}

package application_test

import (
	"context"
	"testing"

	"github.com/lastclick-network/lastclick/internal/core/application"
	"github.com/lastclick-network/lastclick/internal/core/domain"
	"github.com/lastclick-network/lastclick/internal/core/ports"
	"github.com/lastclick-network/lastclick/internal/infrastructure/db"
	"github.com/lastclick-network/lastclick/internal/infrastructure/ledger"
	"github.com/stretchr/testify/require"
)

const (
	operator = "operator"
	userA    = "userA"
	userB    = "userB"
	userC    = "userC"

	stake    = uint64(100)
	duration = int64(60)
	funds    = uint64(1000)
)

type testEnv struct {
	svc         application.Service
	ledger      ports.Ledger
	repoManager ports.RepoManager
}

var storeTypes = []string{"badger", "sqlite"}

func newStoreConfig(t *testing.T, storeType string) db.ServiceConfig {
	if storeType == "sqlite" {
		return db.ServiceConfig{
			DataStoreType:   storeType,
			DataStoreConfig: []interface{}{t.TempDir()},
		}
	}
	return db.ServiceConfig{
		DataStoreType:   storeType,
		DataStoreConfig: []interface{}{"", nil},
	}
}

func newTestEnv(t *testing.T, storeType string) *testEnv {
	repoManager, err := db.NewService(newStoreConfig(t, storeType))
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	ledgerSvc := ledger.NewService(repoManager)
	svc, err := application.NewService(
		application.Config{EnableFaucet: true}, repoManager, ledgerSvc, nil,
	)
	require.NoError(t, err)

	ctx := context.Background()
	for _, user := range []string{userA, userB, userC} {
		_, err := svc.Faucet(ctx, user, funds)
		require.NoError(t, err)
	}

	return &testEnv{svc, ledgerSvc, repoManager}
}

func TestService(t *testing.T) {
	for _, store := range storeTypes {
		t.Run(store, func(t *testing.T) {
			t.Run("scenarios", func(t *testing.T) {
				testScenarios(t, newTestEnv(t, store))
			})
			t.Run("boundary", func(t *testing.T) {
				testInclusiveBoundary(t, newTestEnv(t, store))
			})
			t.Run("create_round", func(t *testing.T) {
				testCreateRound(t, newTestEnv(t, store))
			})
			t.Run("stake", func(t *testing.T) {
				testSubmitStake(t, newTestEnv(t, store))
			})
			t.Run("finalize_check", func(t *testing.T) {
				testFinalizeCheck(t, newTestEnv(t, store))
			})
			t.Run("queries", func(t *testing.T) {
				testQueries(t, newTestEnv(t, store))
			})
			t.Run("vault_accounts", func(t *testing.T) {
				testVaultAccounts(t, newTestEnv(t, store))
			})
		})
	}
}

func testScenarios(t *testing.T, env *testEnv) {
	ctx := context.Background()
	svc := env.svc

	// A
	_, err := svc.InitializeRegistry(ctx, operator, 0)
	require.NoError(t, err)
	_, err = svc.InitializeRegistry(ctx, operator, 0)
	require.ErrorIs(t, err, domain.ErrAlreadyInitialized)

	roundId, err := svc.CreateRound(ctx, operator, stake, duration, 0)
	require.NoError(t, err)
	require.Zero(t, roundId)

	info, err := svc.GetRound(ctx, roundId, 0)
	require.NoError(t, err)
	require.Zero(t, info.Vault.Balance)
	require.True(t, info.Round.IsActive)
	require.Nil(t, info.Round.Leader)

	// B
	info, err = svc.SubmitStake(ctx, userA, roundId, stake, 10)
	require.NoError(t, err)
	require.Equal(t, userA, *info.Round.Leader)
	require.Equal(t, int64(10), *info.Round.LastActionTime)
	require.Equal(t, stake, info.Vault.Balance)

	_, err = svc.SubmitStake(ctx, userA, roundId, stake, 20)
	require.ErrorIs(t, err, domain.ErrAlreadyLeader)
	requireVault(t, env, roundId, stake)

	// C
	info, err = svc.SubmitStake(ctx, userB, roundId, stake, 30)
	require.NoError(t, err)
	require.Equal(t, userB, *info.Round.Leader)
	require.Equal(t, 2*stake, info.Vault.Balance)

	_, err = svc.SubmitStake(ctx, userC, roundId, stake, 95)
	require.ErrorIs(t, err, domain.ErrGameEnded)

	round, err := env.repoManager.Rounds().GetRoundWithId(ctx, roundId)
	require.NoError(t, err)
	require.True(t, round.HasEnded)
	require.False(t, round.IsActive)
	require.Equal(t, userB, *round.Leader)
	require.Equal(t, uint64(2), round.ClickCount)
	require.Equal(t, int64(95), *round.EndedAt)
	requireVault(t, env, roundId, 2*stake)
	requireBalance(t, env, userC, funds)

	registry, err := svc.GetRegistry(ctx, 95)
	require.NoError(t, err)
	require.Nil(t, registry.ActiveRoundId)

	// E
	amount, err := svc.ClaimReward(ctx, userA, roundId, 100)
	require.ErrorIs(t, err, domain.ErrNotLastClicker)
	require.Zero(t, amount)
	requireVault(t, env, roundId, 2*stake)
	requireBalance(t, env, userA, funds-stake)

	// D
	amount, err = svc.ClaimReward(ctx, userB, roundId, 100)
	require.NoError(t, err)
	require.Equal(t, 2*stake, amount)
	requireVault(t, env, roundId, 0)
	requireBalance(t, env, userB, funds-stake+2*stake)

	amount, err = svc.ClaimReward(ctx, userB, roundId, 101)
	require.ErrorIs(t, err, domain.ErrNoRewardsInVault)
	require.Zero(t, amount)
	requireBalance(t, env, userB, funds-stake+2*stake)

	vault, err := env.repoManager.Vaults().GetVaultWithRoundId(ctx, roundId)
	require.NoError(t, err)
	require.Equal(t, userB, *vault.ClaimedBy)
	require.Equal(t, int64(100), *vault.ClaimedAt)

	roundId, err = svc.CreateRound(ctx, operator, stake, duration, 110)
	require.NoError(t, err)
	require.Equal(t, uint64(1), roundId)

	events, err := svc.GetRoundEvents(ctx, 0)
	require.NoError(t, err)
	types := make([]domain.EventType, 0, len(events))
	for _, event := range events {
		types = append(types, event.Type())
	}
	require.Equal(t, []domain.EventType{
		domain.RoundCreatedEvent,
		domain.StakeAcceptedEvent,
		domain.StakeAcceptedEvent,
		domain.RoundFinalizedEvent,
		domain.RewardClaimedEvent,
	}, types)

	requireConservation(t, env, []uint64{0, 1}, userA, userB, userC)
}

func testInclusiveBoundary(t *testing.T, env *testEnv) {
	ctx := context.Background()
	roundId := startRound(t, env, 0)

	_, err := env.svc.SubmitStake(ctx, userA, roundId, stake, 10)
	require.NoError(t, err)

	info, err := env.svc.SubmitStake(ctx, userB, roundId, stake, 10+duration-1)
	require.NoError(t, err)
	require.Equal(t, userB, *info.Round.Leader)

	_, err = env.svc.SubmitStake(ctx, userC, roundId, stake, 10+duration-1+duration)
	require.ErrorIs(t, err, domain.ErrGameEnded)

	info, err = env.svc.GetRound(ctx, roundId, 0)
	require.NoError(t, err)
	require.True(t, info.Round.HasEnded)
	require.Equal(t, userB, *info.Round.Leader)
	require.Equal(t, 10+duration-1+duration, *info.Round.EndedAt)
	requireConservation(t, env, []uint64{roundId}, userA, userB, userC)
}

func testCreateRound(t *testing.T, env *testEnv) {
	ctx := context.Background()

	_, err := env.svc.CreateRound(ctx, operator, stake, duration, 0)
	require.ErrorIs(t, err, domain.ErrRegistryNotInitialized)

	_, err = env.svc.InitializeRegistry(ctx, "", 0)
	require.ErrorIs(t, err, domain.ErrInvalidIdentity)

	_, err = env.svc.InitializeRegistry(ctx, operator, 0)
	require.NoError(t, err)

	fixtures := []struct {
		name        string
		caller      string
		stake       uint64
		duration    int64
		expectedErr error
	}{
		{"not operator", userA, stake, duration, domain.ErrUnauthorized},
		{"empty caller", "", stake, duration, domain.ErrUnauthorized},
		{"zero duration", operator, stake, 0, domain.ErrInvalidDuration},
		{"negative duration", operator, stake, -10, domain.ErrInvalidDuration},
		{"zero stake", operator, 0, duration, domain.ErrInvalidStakeAmount},
	}
	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			_, err := env.svc.CreateRound(ctx, f.caller, f.stake, f.duration, 0)
			require.ErrorIs(t, err, f.expectedErr)
		})
	}

	registry, err := env.svc.GetRegistry(ctx, 0)
	require.NoError(t, err)
	require.Zero(t, registry.NextRoundId)
	require.Nil(t, registry.ActiveRoundId)

	roundId, err := env.svc.CreateRound(ctx, operator, stake, duration, 0)
	require.NoError(t, err)

	_, err = env.svc.CreateRound(ctx, operator, stake, duration, 5)
	require.ErrorIs(t, err, domain.ErrRoundAlreadyActive)
	_, err = env.svc.CreateRound(ctx, userA, stake, duration, 5)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	// A round without stakes blocks creation forever.
	_, err = env.svc.CreateRound(ctx, operator, stake, duration, 10*duration)
	require.ErrorIs(t, err, domain.ErrRoundAlreadyActive)

	_, err = env.svc.SubmitStake(ctx, userA, roundId, stake, 100)
	require.NoError(t, err)

	_, err = env.svc.CreateRound(ctx, operator, stake, duration, 100+duration-1)
	require.ErrorIs(t, err, domain.ErrRoundAlreadyActive)

	// Once timed out, the active round is finalized on creation.
	next, err := env.svc.CreateRound(ctx, operator, 2*stake, duration, 100+duration)
	require.NoError(t, err)
	require.Equal(t, roundId+1, next)

	info, err := env.svc.GetRound(ctx, roundId, 0)
	require.NoError(t, err)
	require.True(t, info.Round.HasEnded)

	registry, err = env.svc.GetRegistry(ctx, 100+duration)
	require.NoError(t, err)
	require.NotNil(t, registry.ActiveRoundId)
	require.Equal(t, next, *registry.ActiveRoundId)
	require.Equal(t, next+1, registry.NextRoundId)
}

func testSubmitStake(t *testing.T, env *testEnv) {
	ctx := context.Background()
	roundId := startRound(t, env, 0)

	_, err := env.svc.SubmitStake(ctx, userA, roundId+1, stake, 1)
	require.ErrorIs(t, err, domain.ErrRoundNotFound)

	_, err = env.svc.Faucet(ctx, "poor", stake-1)
	require.NoError(t, err)

	fixtures := []struct {
		name        string
		caller      string
		amount      uint64
		expectedErr error
	}{
		{"missing identity", "", stake, domain.ErrInvalidIdentity},
		{"incorrect amount", userA, stake + 1, domain.ErrIncorrectAmount},
		{"zero amount", userA, 0, domain.ErrIncorrectAmount},
		{"insufficient funds", "poor", stake, domain.ErrInsufficientFunds},
		{"unknown account", "stranger", stake, domain.ErrInsufficientFunds},
	}
	for _, f := range fixtures {
		t.Run(f.name, func(t *testing.T) {
			_, err := env.svc.SubmitStake(ctx, f.caller, roundId, f.amount, 1)
			require.ErrorIs(t, err, f.expectedErr)
		})
	}
	requireVault(t, env, roundId, 0)
	requireBalance(t, env, "poor", stake-1)

	for i, user := range []string{userA, userB, userA, userC, userB} {
		info, err := env.svc.SubmitStake(ctx, user, roundId, stake, int64(10*(i+1)))
		require.NoError(t, err)
		require.Equal(t, uint64(i+1), info.Round.ClickCount)
		require.Equal(t, uint64(i+1)*stake, info.Vault.Balance)
		requireVault(t, env, roundId, uint64(i+1)*stake)
	}

	// Leader check comes after the amount check.
	_, err = env.svc.SubmitStake(ctx, userB, roundId, stake-1, 60)
	require.ErrorIs(t, err, domain.ErrIncorrectAmount)
	_, err = env.svc.SubmitStake(ctx, userB, roundId, stake, 60)
	require.ErrorIs(t, err, domain.ErrAlreadyLeader)

	// Claims are rejected while the round is running.
	_, err = env.svc.ClaimReward(ctx, userB, roundId, 60)
	require.ErrorIs(t, err, domain.ErrGameNotEnded)

	// A clock that went backwards does not finalize the round.
	info, err := env.svc.SubmitStake(ctx, userA, roundId, stake, 5)
	require.NoError(t, err)
	require.True(t, info.Round.IsActive)
	require.Equal(t, int64(5), *info.Round.LastActionTime)

	requireConservation(t, env, []uint64{roundId}, userA, userB, userC, "poor")
}

func testFinalizeCheck(t *testing.T, env *testEnv) {
	ctx := context.Background()
	roundId := startRound(t, env, 0)

	_, err := env.svc.FinalizeCheck(ctx, roundId+5, 0)
	require.ErrorIs(t, err, domain.ErrRoundNotFound)

	info, err := env.svc.FinalizeCheck(ctx, roundId, 1000)
	require.NoError(t, err)
	require.True(t, info.Round.IsActive)

	_, err = env.svc.SubmitStake(ctx, userA, roundId, stake, 10)
	require.NoError(t, err)

	info, err = env.svc.FinalizeCheck(ctx, roundId, 10+duration-1)
	require.NoError(t, err)
	require.True(t, info.Round.IsActive)

	info, err = env.svc.FinalizeCheck(ctx, roundId, 10+duration)
	require.NoError(t, err)
	require.True(t, info.Round.HasEnded)
	require.Equal(t, 10+duration, *info.Round.EndedAt)

	// Repeated checks leave the outcome untouched.
	info, err = env.svc.FinalizeCheck(ctx, roundId, 10+5*duration)
	require.NoError(t, err)
	require.Equal(t, 10+duration, *info.Round.EndedAt)
	require.Equal(t, userA, *info.Round.Leader)

	events, err := env.svc.GetRoundEvents(ctx, roundId)
	require.NoError(t, err)
	finalized := 0
	for _, event := range events {
		if event.Type() == domain.RoundFinalizedEvent {
			finalized++
		}
	}
	require.Equal(t, 1, finalized)

	amount, err := env.svc.ClaimReward(ctx, userA, roundId, 10+5*duration)
	require.NoError(t, err)
	require.Equal(t, stake, amount)
}

func testQueries(t *testing.T, env *testEnv) {
	ctx := context.Background()

	_, err := env.svc.GetRegistry(ctx, 0)
	require.ErrorIs(t, err, domain.ErrRegistryNotInitialized)
	_, err = env.svc.GetActiveRound(ctx, 0)
	require.ErrorIs(t, err, domain.ErrRegistryNotInitialized)

	roundId := startRound(t, env, 0)

	info, err := env.svc.GetActiveRound(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, info)
	require.Equal(t, roundId, info.Round.Id)
	require.Nil(t, info.Remaining(0))

	_, err = env.svc.SubmitStake(ctx, userA, roundId, stake, 10)
	require.NoError(t, err)

	info, err = env.svc.GetActiveRound(ctx, 20)
	require.NoError(t, err)
	require.NotNil(t, info)
	require.Equal(t, duration-10, *info.Remaining(20))

	// Reads see the round as finalized without persisting it.
	info, err = env.svc.GetActiveRound(ctx, 10+duration)
	require.NoError(t, err)
	require.Nil(t, info)

	info, err = env.svc.GetRound(ctx, roundId, 10+duration)
	require.NoError(t, err)
	require.True(t, info.Round.HasEnded)
	require.Nil(t, info.Remaining(10+duration))

	rounds, err := env.svc.ListRounds(ctx, 10+duration)
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	require.True(t, rounds[0].Round.HasEnded)

	stored, err := env.repoManager.Rounds().GetRoundWithId(ctx, roundId)
	require.NoError(t, err)
	require.True(t, stored.IsActive)
	require.False(t, stored.HasEnded)

	registry, err := env.svc.GetRegistry(ctx, 10+duration-1)
	require.NoError(t, err)
	require.NotNil(t, registry.ActiveRoundId)
	require.Equal(t, roundId, *registry.ActiveRoundId)

	registry, err = env.svc.GetRegistry(ctx, 10+duration)
	require.NoError(t, err)
	require.Nil(t, registry.ActiveRoundId)

	stored, err = env.repoManager.Rounds().GetRoundWithId(ctx, roundId)
	require.NoError(t, err)
	require.True(t, stored.IsActive)
	storedRegistry, err := env.repoManager.Registry().Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, storedRegistry.ActiveRoundId)

	_, err = env.svc.GetRound(ctx, roundId+1, 0)
	require.ErrorIs(t, err, domain.ErrRoundNotFound)
	_, err = env.svc.GetRoundEvents(ctx, roundId+1)
	require.ErrorIs(t, err, domain.ErrRoundNotFound)

	balance, err := env.svc.GetBalance(ctx, domain.VaultKey(roundId))
	require.NoError(t, err)
	require.Equal(t, stake, balance)
	_, err = env.svc.GetBalance(ctx, "")
	require.ErrorIs(t, err, domain.ErrInvalidIdentity)

	_, err = env.svc.Faucet(ctx, domain.VaultKey(roundId), stake)
	require.ErrorIs(t, err, domain.ErrReservedAccount)
	_, err = env.svc.Faucet(ctx, userA, 0)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	balance, err = env.svc.Faucet(ctx, userA, 5)
	require.NoError(t, err)
	require.Equal(t, funds-stake+5, balance)
}

// testVaultAccounts checks that custody accounts cannot act as participants,
// so one round's pool cannot be moved into another.
func testVaultAccounts(t *testing.T, env *testEnv) {
	ctx := context.Background()
	previous := startRound(t, env, 0)

	_, err := env.svc.SubmitStake(ctx, userA, previous, stake, 10)
	require.NoError(t, err)
	_, err = env.svc.SubmitStake(ctx, userB, previous, stake, 20)
	require.NoError(t, err)
	requireVault(t, env, previous, 2*stake)

	now := 20 + duration
	roundId, err := env.svc.CreateRound(ctx, operator, stake, duration, now)
	require.NoError(t, err)

	_, err = env.svc.SubmitStake(ctx, domain.VaultKey(previous), roundId, stake, now+10)
	require.ErrorIs(t, err, domain.ErrReservedAccount)
	_, err = env.svc.SubmitStake(ctx, domain.VaultKey(roundId), roundId, stake, now+10)
	require.ErrorIs(t, err, domain.ErrReservedAccount)
	requireVault(t, env, previous, 2*stake)
	requireVault(t, env, roundId, 0)

	_, err = env.svc.CreateRound(ctx, domain.VaultKey(previous), stake, duration, now+10)
	require.ErrorIs(t, err, domain.ErrReservedAccount)
	_, err = env.svc.ClaimReward(ctx, domain.VaultKey(previous), previous, now+10)
	require.ErrorIs(t, err, domain.ErrReservedAccount)

	events, err := env.svc.GetRoundEvents(ctx, roundId)
	require.NoError(t, err)
	require.Len(t, events, 1)

	amount, err := env.svc.ClaimReward(ctx, userB, previous, now+10)
	require.NoError(t, err)
	require.Equal(t, 2*stake, amount)
	requireVault(t, env, previous, 0)
	requireBalance(t, env, userB, funds+stake)
	requireConservation(t, env, []uint64{previous, roundId}, userA, userB, userC)
}

func TestFaucetDisabled(t *testing.T) {
	repoManager, err := db.NewService(db.ServiceConfig{
		DataStoreType:   "badger",
		DataStoreConfig: []interface{}{"", nil},
	})
	require.NoError(t, err)
	defer repoManager.Close()

	svc, err := application.NewService(
		application.Config{}, repoManager, ledger.NewService(repoManager), nil,
	)
	require.NoError(t, err)

	_, err = svc.Faucet(context.Background(), userA, stake)
	require.ErrorIs(t, err, domain.ErrFaucetDisabled)
}

func startRound(t *testing.T, env *testEnv, now int64) uint64 {
	ctx := context.Background()
	_, err := env.svc.InitializeRegistry(ctx, operator, now)
	require.NoError(t, err)
	roundId, err := env.svc.CreateRound(ctx, operator, stake, duration, now)
	require.NoError(t, err)
	return roundId
}

// requireVault checks that the vault record and its custody account agree.
func requireVault(t *testing.T, env *testEnv, roundId, expected uint64) {
	t.Helper()
	ctx := context.Background()

	vault, err := env.repoManager.Vaults().GetVaultWithRoundId(ctx, roundId)
	require.NoError(t, err)
	require.Equal(t, expected, vault.Balance)

	balance, err := env.ledger.Balance(ctx, vault.Account())
	require.NoError(t, err)
	require.Equal(t, expected, balance)
}

func requireBalance(t *testing.T, env *testEnv, account string, expected uint64) {
	t.Helper()
	balance, err := env.ledger.Balance(context.Background(), account)
	require.NoError(t, err)
	require.Equal(t, expected, balance)
}

// requireConservation checks that no units were created or destroyed by
// stakes and claims.
func requireConservation(t *testing.T, env *testEnv, roundIds []uint64, users ...string) {
	t.Helper()
	ctx := context.Background()

	total := uint64(0)
	for _, user := range users {
		balance, err := env.ledger.Balance(ctx, user)
		require.NoError(t, err)
		total += balance
	}
	for _, roundId := range roundIds {
		balance, err := env.ledger.Balance(ctx, domain.VaultKey(roundId))
		require.NoError(t, err)
		total += balance
	}

	initial := uint64(3) * funds
	for _, user := range users {
		if user != userA && user != userB && user != userC {
			initial += stake - 1
		}
	}
	require.Equal(t, initial, total)
}

package application

import (
	"context"

	"github.com/lastclick-network/lastclick/internal/core/domain"
)

type Service interface {
	Start() error
	Stop()
	InitializeRegistry(ctx context.Context, operator string, now int64) (*domain.Registry, error)
	CreateRound(
		ctx context.Context, caller string, stakeAmount uint64, duration, now int64,
	) (uint64, error)
	SubmitStake(
		ctx context.Context, caller string, roundId, amount uint64, now int64,
	) (*RoundInfo, error)
	ClaimReward(ctx context.Context, caller string, roundId uint64, now int64) (uint64, error)
	FinalizeCheck(ctx context.Context, roundId uint64, now int64) (*RoundInfo, error)
	// GetRegistry returns the registry as it would look after finalizing its
	// active round at now.
	GetRegistry(ctx context.Context, now int64) (*domain.Registry, error)
	GetRound(ctx context.Context, roundId uint64, now int64) (*RoundInfo, error)
	// GetActiveRound returns nil if there is no round accepting stakes at now.
	GetActiveRound(ctx context.Context, now int64) (*RoundInfo, error)
	ListRounds(ctx context.Context, now int64) ([]RoundInfo, error)
	GetRoundEvents(ctx context.Context, roundId uint64) ([]domain.Event, error)
	GetBalance(ctx context.Context, account string) (uint64, error)
	Faucet(ctx context.Context, account string, amount uint64) (uint64, error)
}

type Config struct {
	EnableFaucet bool
	// GcInterval is the period in seconds of store maintenance, 0 disables it.
	GcInterval int64
}

// RoundInfo is a round together with its vault.
type RoundInfo struct {
	Round domain.Round
	Vault domain.Vault
}

// Remaining returns the seconds left before the round can be finalized, or
// nil if the countdown has not started or the round is over.
func (i RoundInfo) Remaining(now int64) *int64 {
	round := i.Round
	if !round.IsActive || round.LastActionTime == nil {
		return nil
	}
	remaining := *round.LastActionTime + round.Duration - now
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

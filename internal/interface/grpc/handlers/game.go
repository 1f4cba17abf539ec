package handlers

import (
	"context"

	"github.com/lastclick-network/lastclick/internal/core/application"
	"github.com/lastclick-network/lastclick/internal/core/ports"
	lastclickv1 "github.com/lastclick-network/lastclick/pkg/api/v1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type gameHandler struct {
	svc   application.Service
	clock ports.Clock
}

// NewGameHandler serves the game service. The current time of every call is
// taken from clock, never from the caller.
func NewGameHandler(
	svc application.Service, clock ports.Clock,
) lastclickv1.GameServiceServer {
	return &gameHandler{svc, clock}
}

func (h *gameHandler) InitializeRegistry(
	ctx context.Context, _ *lastclickv1.InitializeRegistryRequest,
) (*lastclickv1.InitializeRegistryResponse, error) {
	caller, err := parseCaller(ctx)
	if err != nil {
		return nil, err
	}

	registry, err := h.svc.InitializeRegistry(ctx, caller, h.clock.Now())
	if err != nil {
		return nil, toStatusError(err)
	}

	return &lastclickv1.InitializeRegistryResponse{
		Registry: toRegistry(registry),
	}, nil
}

func (h *gameHandler) CreateRound(
	ctx context.Context, req *lastclickv1.CreateRoundRequest,
) (*lastclickv1.CreateRoundResponse, error) {
	caller, err := parseCaller(ctx)
	if err != nil {
		return nil, err
	}

	roundId, err := h.svc.CreateRound(
		ctx, caller, req.StakeAmount, req.Duration, h.clock.Now(),
	)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &lastclickv1.CreateRoundResponse{RoundId: roundId}, nil
}

func (h *gameHandler) SubmitStake(
	ctx context.Context, req *lastclickv1.SubmitStakeRequest,
) (*lastclickv1.SubmitStakeResponse, error) {
	caller, err := parseCaller(ctx)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	info, err := h.svc.SubmitStake(ctx, caller, req.RoundId, req.Amount, now)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &lastclickv1.SubmitStakeResponse{Round: toRound(*info, now)}, nil
}

func (h *gameHandler) ClaimReward(
	ctx context.Context, req *lastclickv1.ClaimRewardRequest,
) (*lastclickv1.ClaimRewardResponse, error) {
	caller, err := parseCaller(ctx)
	if err != nil {
		return nil, err
	}

	amount, err := h.svc.ClaimReward(ctx, caller, req.RoundId, h.clock.Now())
	if err != nil {
		return nil, toStatusError(err)
	}

	return &lastclickv1.ClaimRewardResponse{Amount: amount}, nil
}

func (h *gameHandler) FinalizeCheck(
	ctx context.Context, req *lastclickv1.FinalizeCheckRequest,
) (*lastclickv1.FinalizeCheckResponse, error) {
	now := h.clock.Now()
	info, err := h.svc.FinalizeCheck(ctx, req.RoundId, now)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &lastclickv1.FinalizeCheckResponse{Round: toRound(*info, now)}, nil
}

func (h *gameHandler) GetRegistry(
	ctx context.Context, _ *lastclickv1.GetRegistryRequest,
) (*lastclickv1.GetRegistryResponse, error) {
	registry, err := h.svc.GetRegistry(ctx, h.clock.Now())
	if err != nil {
		return nil, toStatusError(err)
	}

	return &lastclickv1.GetRegistryResponse{Registry: toRegistry(registry)}, nil
}

func (h *gameHandler) GetRound(
	ctx context.Context, req *lastclickv1.GetRoundRequest,
) (*lastclickv1.GetRoundResponse, error) {
	now := h.clock.Now()
	info, err := h.svc.GetRound(ctx, req.RoundId, now)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &lastclickv1.GetRoundResponse{Round: toRound(*info, now)}, nil
}

func (h *gameHandler) GetActiveRound(
	ctx context.Context, _ *lastclickv1.GetActiveRoundRequest,
) (*lastclickv1.GetActiveRoundResponse, error) {
	now := h.clock.Now()
	info, err := h.svc.GetActiveRound(ctx, now)
	if err != nil {
		return nil, toStatusError(err)
	}
	if info == nil {
		return &lastclickv1.GetActiveRoundResponse{}, nil
	}

	round := toRound(*info, now)
	return &lastclickv1.GetActiveRoundResponse{Round: &round}, nil
}

func (h *gameHandler) ListRounds(
	ctx context.Context, _ *lastclickv1.ListRoundsRequest,
) (*lastclickv1.ListRoundsResponse, error) {
	now := h.clock.Now()
	infos, err := h.svc.ListRounds(ctx, now)
	if err != nil {
		return nil, toStatusError(err)
	}

	rounds := make([]lastclickv1.Round, 0, len(infos))
	for _, info := range infos {
		rounds = append(rounds, toRound(info, now))
	}
	return &lastclickv1.ListRoundsResponse{Rounds: rounds}, nil
}

func (h *gameHandler) GetRoundEvents(
	ctx context.Context, req *lastclickv1.GetRoundEventsRequest,
) (*lastclickv1.GetRoundEventsResponse, error) {
	events, err := h.svc.GetRoundEvents(ctx, req.RoundId)
	if err != nil {
		return nil, toStatusError(err)
	}

	list, err := toEvents(events)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &lastclickv1.GetRoundEventsResponse{Events: list}, nil
}

func (h *gameHandler) GetBalance(
	ctx context.Context, req *lastclickv1.GetBalanceRequest,
) (*lastclickv1.GetBalanceResponse, error) {
	balance, err := h.svc.GetBalance(ctx, req.Account)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &lastclickv1.GetBalanceResponse{
		Account: req.Account,
		Balance: balance,
	}, nil
}

func (h *gameHandler) Faucet(
	ctx context.Context, req *lastclickv1.FaucetRequest,
) (*lastclickv1.FaucetResponse, error) {
	if len(req.Account) <= 0 {
		return nil, status.Error(codes.InvalidArgument, "missing account")
	}
	if req.Amount == 0 {
		return nil, status.Error(codes.InvalidArgument, "missing amount")
	}

	balance, err := h.svc.Faucet(ctx, req.Account, req.Amount)
	if err != nil {
		return nil, toStatusError(err)
	}

	return &lastclickv1.FaucetResponse{
		Account: req.Account,
		Balance: balance,
	}, nil
}

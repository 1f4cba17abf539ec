package lastclickv1

import (
	"context"

	"google.golang.org/grpc"
)

type GameServiceClient interface {
	InitializeRegistry(ctx context.Context, in *InitializeRegistryRequest, opts ...grpc.CallOption) (*InitializeRegistryResponse, error)
	CreateRound(ctx context.Context, in *CreateRoundRequest, opts ...grpc.CallOption) (*CreateRoundResponse, error)
	SubmitStake(ctx context.Context, in *SubmitStakeRequest, opts ...grpc.CallOption) (*SubmitStakeResponse, error)
	ClaimReward(ctx context.Context, in *ClaimRewardRequest, opts ...grpc.CallOption) (*ClaimRewardResponse, error)
	FinalizeCheck(ctx context.Context, in *FinalizeCheckRequest, opts ...grpc.CallOption) (*FinalizeCheckResponse, error)
	GetRegistry(ctx context.Context, in *GetRegistryRequest, opts ...grpc.CallOption) (*GetRegistryResponse, error)
	GetRound(ctx context.Context, in *GetRoundRequest, opts ...grpc.CallOption) (*GetRoundResponse, error)
	GetActiveRound(ctx context.Context, in *GetActiveRoundRequest, opts ...grpc.CallOption) (*GetActiveRoundResponse, error)
	ListRounds(ctx context.Context, in *ListRoundsRequest, opts ...grpc.CallOption) (*ListRoundsResponse, error)
	GetRoundEvents(ctx context.Context, in *GetRoundEventsRequest, opts ...grpc.CallOption) (*GetRoundEventsResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
	Faucet(ctx context.Context, in *FaucetRequest, opts ...grpc.CallOption) (*FaucetResponse, error)
}

type gameServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGameServiceClient(cc grpc.ClientConnInterface) GameServiceClient {
	return &gameServiceClient{cc}
}

func invoke[Resp any](
	ctx context.Context, cc grpc.ClientConnInterface,
	method string, in interface{}, opts []grpc.CallOption,
) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethodName(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gameServiceClient) InitializeRegistry(ctx context.Context, in *InitializeRegistryRequest, opts ...grpc.CallOption) (*InitializeRegistryResponse, error) {
	return invoke[InitializeRegistryResponse](ctx, c.cc, InitializeRegistryMethod, in, opts)
}

func (c *gameServiceClient) CreateRound(ctx context.Context, in *CreateRoundRequest, opts ...grpc.CallOption) (*CreateRoundResponse, error) {
	return invoke[CreateRoundResponse](ctx, c.cc, CreateRoundMethod, in, opts)
}

func (c *gameServiceClient) SubmitStake(ctx context.Context, in *SubmitStakeRequest, opts ...grpc.CallOption) (*SubmitStakeResponse, error) {
	return invoke[SubmitStakeResponse](ctx, c.cc, SubmitStakeMethod, in, opts)
}

func (c *gameServiceClient) ClaimReward(ctx context.Context, in *ClaimRewardRequest, opts ...grpc.CallOption) (*ClaimRewardResponse, error) {
	return invoke[ClaimRewardResponse](ctx, c.cc, ClaimRewardMethod, in, opts)
}

func (c *gameServiceClient) FinalizeCheck(ctx context.Context, in *FinalizeCheckRequest, opts ...grpc.CallOption) (*FinalizeCheckResponse, error) {
	return invoke[FinalizeCheckResponse](ctx, c.cc, FinalizeCheckMethod, in, opts)
}

func (c *gameServiceClient) GetRegistry(ctx context.Context, in *GetRegistryRequest, opts ...grpc.CallOption) (*GetRegistryResponse, error) {
	return invoke[GetRegistryResponse](ctx, c.cc, GetRegistryMethod, in, opts)
}

func (c *gameServiceClient) GetRound(ctx context.Context, in *GetRoundRequest, opts ...grpc.CallOption) (*GetRoundResponse, error) {
	return invoke[GetRoundResponse](ctx, c.cc, GetRoundMethod, in, opts)
}

func (c *gameServiceClient) GetActiveRound(ctx context.Context, in *GetActiveRoundRequest, opts ...grpc.CallOption) (*GetActiveRoundResponse, error) {
	return invoke[GetActiveRoundResponse](ctx, c.cc, GetActiveRoundMethod, in, opts)
}

func (c *gameServiceClient) ListRounds(ctx context.Context, in *ListRoundsRequest, opts ...grpc.CallOption) (*ListRoundsResponse, error) {
	return invoke[ListRoundsResponse](ctx, c.cc, ListRoundsMethod, in, opts)
}

func (c *gameServiceClient) GetRoundEvents(ctx context.Context, in *GetRoundEventsRequest, opts ...grpc.CallOption) (*GetRoundEventsResponse, error) {
	return invoke[GetRoundEventsResponse](ctx, c.cc, GetRoundEventsMethod, in, opts)
}

func (c *gameServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	return invoke[GetBalanceResponse](ctx, c.cc, GetBalanceMethod, in, opts)
}

func (c *gameServiceClient) Faucet(ctx context.Context, in *FaucetRequest, opts ...grpc.CallOption) (*FaucetResponse, error) {
	return invoke[FaucetResponse](ctx, c.cc, FaucetMethod, in, opts)
}

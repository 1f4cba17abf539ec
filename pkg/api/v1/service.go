package lastclickv1

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName = "lastclick.v1.GameService"

	InitializeRegistryMethod = "InitializeRegistry"
	CreateRoundMethod        = "CreateRound"
	SubmitStakeMethod        = "SubmitStake"
	ClaimRewardMethod        = "ClaimReward"
	FinalizeCheckMethod      = "FinalizeCheck"
	GetRegistryMethod        = "GetRegistry"
	GetRoundMethod           = "GetRound"
	GetActiveRoundMethod     = "GetActiveRound"
	ListRoundsMethod         = "ListRounds"
	GetRoundEventsMethod     = "GetRoundEvents"
	GetBalanceMethod         = "GetBalance"
	FaucetMethod             = "Faucet"
)

type GameServiceServer interface {
	InitializeRegistry(context.Context, *InitializeRegistryRequest) (*InitializeRegistryResponse, error)
	CreateRound(context.Context, *CreateRoundRequest) (*CreateRoundResponse, error)
	SubmitStake(context.Context, *SubmitStakeRequest) (*SubmitStakeResponse, error)
	ClaimReward(context.Context, *ClaimRewardRequest) (*ClaimRewardResponse, error)
	FinalizeCheck(context.Context, *FinalizeCheckRequest) (*FinalizeCheckResponse, error)
	GetRegistry(context.Context, *GetRegistryRequest) (*GetRegistryResponse, error)
	GetRound(context.Context, *GetRoundRequest) (*GetRoundResponse, error)
	GetActiveRound(context.Context, *GetActiveRoundRequest) (*GetActiveRoundResponse, error)
	ListRounds(context.Context, *ListRoundsRequest) (*ListRoundsResponse, error)
	GetRoundEvents(context.Context, *GetRoundEventsRequest) (*GetRoundEventsResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	Faucet(context.Context, *FaucetRequest) (*FaucetResponse, error)
}

func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameService_ServiceDesc, srv)
}

// GameService_ServiceDesc describes the game service for grpc.ServiceRegistrar.
// Messages are plain structs encoded with the json codec.
var GameService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: InitializeRegistryMethod,
			Handler:    unaryHandler(InitializeRegistryMethod, GameServiceServer.InitializeRegistry),
		},
		{
			MethodName: CreateRoundMethod,
			Handler:    unaryHandler(CreateRoundMethod, GameServiceServer.CreateRound),
		},
		{
			MethodName: SubmitStakeMethod,
			Handler:    unaryHandler(SubmitStakeMethod, GameServiceServer.SubmitStake),
		},
		{
			MethodName: ClaimRewardMethod,
			Handler:    unaryHandler(ClaimRewardMethod, GameServiceServer.ClaimReward),
		},
		{
			MethodName: FinalizeCheckMethod,
			Handler:    unaryHandler(FinalizeCheckMethod, GameServiceServer.FinalizeCheck),
		},
		{
			MethodName: GetRegistryMethod,
			Handler:    unaryHandler(GetRegistryMethod, GameServiceServer.GetRegistry),
		},
		{
			MethodName: GetRoundMethod,
			Handler:    unaryHandler(GetRoundMethod, GameServiceServer.GetRound),
		},
		{
			MethodName: GetActiveRoundMethod,
			Handler:    unaryHandler(GetActiveRoundMethod, GameServiceServer.GetActiveRound),
		},
		{
			MethodName: ListRoundsMethod,
			Handler:    unaryHandler(ListRoundsMethod, GameServiceServer.ListRounds),
		},
		{
			MethodName: GetRoundEventsMethod,
			Handler:    unaryHandler(GetRoundEventsMethod, GameServiceServer.GetRoundEvents),
		},
		{
			MethodName: GetBalanceMethod,
			Handler:    unaryHandler(GetBalanceMethod, GameServiceServer.GetBalance),
		},
		{
			MethodName: FaucetMethod,
			Handler:    unaryHandler(FaucetMethod, GameServiceServer.Faucet),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lastclick/v1/service.go",
}

func FullMethodName(method string) string {
	return "/" + ServiceName + "/" + method
}

func unaryHandler[Req any, Resp any](
	method string,
	call func(GameServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(
		srv interface{}, ctx context.Context,
		dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor,
	) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GameServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethodName(method),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(GameServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

package main

import (
	"fmt"

	lastclickv1 "github.com/lastclick-network/lastclick/pkg/api/v1"
	"github.com/urfave/cli/v2"
)

var (
	identityFlag = &cli.StringFlag{
		Name:    "identity",
		Usage:   "the identity to act as, overrides the one in the local state",
		EnvVars: []string{"LASTCLICK_IDENTITY"},
	}
	roundIdFlag = &cli.Uint64Flag{
		Name:     "id",
		Usage:    "the id of the round",
		Required: true,
	}
	optionalRoundIdFlag = &cli.Uint64Flag{
		Name:  "id",
		Usage: "the id of the round, the active one if omitted",
	}
	stakeAmountFlag = &cli.Uint64Flag{
		Name:     "stake",
		Usage:    "the exact amount every stake of the round must carry",
		Required: true,
	}
	durationFlag = &cli.Int64Flag{
		Name:     "duration",
		Usage:    "seconds without stakes after which the round ends",
		Required: true,
	}
	amountFlag = &cli.Uint64Flag{
		Name:     "amount",
		Usage:    "the amount to move",
		Required: true,
	}
	accountFlag = &cli.StringFlag{
		Name:  "account",
		Usage: "the account to query, the caller identity if omitted",
	}
	eventsFlag = &cli.BoolFlag{
		Name:  "events",
		Usage: "list the events recorded for the round",
	}
	allFlag = &cli.BoolFlag{
		Name:  "all",
		Usage: "list every round",
	}
)

var registryCommand = &cli.Command{
	Name:   "registry",
	Usage:  "Get the game registry",
	Action: getRegistryAction,
	Subcommands: []*cli.Command{
		{
			Name:   "init",
			Usage:  "initialize the registry, the caller becomes its operator",
			Action: initRegistryAction,
		},
	},
}

var roundCommand = &cli.Command{
	Name:   "round",
	Usage:  "Get info about a round",
	Action: getRoundAction,
	Flags:  []cli.Flag{optionalRoundIdFlag, eventsFlag, allFlag},
	Subcommands: []*cli.Command{
		{
			Name:   "create",
			Usage:  "open a new round, operator only",
			Action: createRoundAction,
			Flags:  []cli.Flag{stakeAmountFlag, durationFlag},
		},
	},
}

var stakeCommand = &cli.Command{
	Name:   "stake",
	Usage:  "Stake on a round and become its last clicker",
	Action: stakeAction,
	Flags:  []cli.Flag{roundIdFlag, amountFlag},
}

var claimCommand = &cli.Command{
	Name:   "claim",
	Usage:  "Claim the vault of an ended round",
	Action: claimAction,
	Flags:  []cli.Flag{roundIdFlag},
}

var finalizeCommand = &cli.Command{
	Name:   "finalize",
	Usage:  "End a round whose timeout has elapsed",
	Action: finalizeAction,
	Flags:  []cli.Flag{roundIdFlag},
}

var balanceCommand = &cli.Command{
	Name:   "balance",
	Usage:  "Get the balance of an account",
	Action: balanceAction,
	Flags:  []cli.Flag{accountFlag},
}

var faucetCommand = &cli.Command{
	Name:   "faucet",
	Usage:  "Credit an account, only if the daemon has the faucet enabled",
	Action: faucetAction,
	Flags:  []cli.Flag{accountFlag, amountFlag},
}

func getRegistryAction(ctx *cli.Context) error {
	client, cleanup, err := getServiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := client.GetRegistry(ctx.Context, &lastclickv1.GetRegistryRequest{})
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func initRegistryAction(ctx *cli.Context) error {
	client, cleanup, err := getServiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	callCtx, err := callerContext(ctx)
	if err != nil {
		return err
	}

	res, err := client.InitializeRegistry(callCtx, &lastclickv1.InitializeRegistryRequest{})
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func getRoundAction(ctx *cli.Context) error {
	client, cleanup, err := getServiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	if ctx.Bool(allFlag.Name) {
		res, err := client.ListRounds(ctx.Context, &lastclickv1.ListRoundsRequest{})
		if err != nil {
			return err
		}
		printRespJSON(res)
		return nil
	}

	if !ctx.IsSet(optionalRoundIdFlag.Name) {
		if ctx.Bool(eventsFlag.Name) {
			return fmt.Errorf("missing flag, --events requires --id")
		}
		res, err := client.GetActiveRound(ctx.Context, &lastclickv1.GetActiveRoundRequest{})
		if err != nil {
			return err
		}
		if res.Round == nil {
			fmt.Println("no active round")
			return nil
		}
		printRespJSON(res)
		return nil
	}

	roundId := ctx.Uint64(optionalRoundIdFlag.Name)
	if ctx.Bool(eventsFlag.Name) {
		res, err := client.GetRoundEvents(
			ctx.Context, &lastclickv1.GetRoundEventsRequest{RoundId: roundId},
		)
		if err != nil {
			return err
		}
		printRespJSON(res)
		return nil
	}

	res, err := client.GetRound(ctx.Context, &lastclickv1.GetRoundRequest{RoundId: roundId})
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func createRoundAction(ctx *cli.Context) error {
	client, cleanup, err := getServiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	callCtx, err := callerContext(ctx)
	if err != nil {
		return err
	}

	res, err := client.CreateRound(callCtx, &lastclickv1.CreateRoundRequest{
		StakeAmount: ctx.Uint64(stakeAmountFlag.Name),
		Duration:    ctx.Int64(durationFlag.Name),
	})
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func stakeAction(ctx *cli.Context) error {
	client, cleanup, err := getServiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	callCtx, err := callerContext(ctx)
	if err != nil {
		return err
	}

	res, err := client.SubmitStake(callCtx, &lastclickv1.SubmitStakeRequest{
		RoundId: ctx.Uint64(roundIdFlag.Name),
		Amount:  ctx.Uint64(amountFlag.Name),
	})
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func claimAction(ctx *cli.Context) error {
	client, cleanup, err := getServiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	callCtx, err := callerContext(ctx)
	if err != nil {
		return err
	}

	res, err := client.ClaimReward(callCtx, &lastclickv1.ClaimRewardRequest{
		RoundId: ctx.Uint64(roundIdFlag.Name),
	})
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func finalizeAction(ctx *cli.Context) error {
	client, cleanup, err := getServiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := client.FinalizeCheck(ctx.Context, &lastclickv1.FinalizeCheckRequest{
		RoundId: ctx.Uint64(roundIdFlag.Name),
	})
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func balanceAction(ctx *cli.Context) error {
	client, cleanup, err := getServiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	account, err := accountOrIdentity(ctx)
	if err != nil {
		return err
	}

	res, err := client.GetBalance(ctx.Context, &lastclickv1.GetBalanceRequest{Account: account})
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func faucetAction(ctx *cli.Context) error {
	client, cleanup, err := getServiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	account, err := accountOrIdentity(ctx)
	if err != nil {
		return err
	}

	res, err := client.Faucet(ctx.Context, &lastclickv1.FaucetRequest{
		Account: account,
		Amount:  ctx.Uint64(amountFlag.Name),
	})
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func accountOrIdentity(ctx *cli.Context) (string, error) {
	if account := ctx.String(accountFlag.Name); len(account) > 0 {
		return account, nil
	}

	if identity := ctx.String(identityFlag.Name); len(identity) > 0 {
		return identity, nil
	}

	state, err := getState()
	if err != nil {
		return "", err
	}
	if identity := state["identity"]; len(identity) > 0 {
		return identity, nil
	}
	return "", fmt.Errorf("missing flag, please provide either --account or --identity")
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	lastclickv1 "github.com/lastclick-network/lastclick/pkg/api/v1"
	"github.com/urfave/cli/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

const (
	DATADIR_ENVVAR = "LASTCLICK_CLI_DATADIR"
	STATE_FILE     = "state.json"
)

var (
	version = "alpha"

	datadir   = btcutil.AppDataDir("lastclick", false)
	statePath = filepath.Join(datadir, STATE_FILE)

	defaultRpcServer = "localhost:7171"
	defaultNoTls     = true

	initialState = map[string]string{
		"rpcserver": defaultRpcServer,
		"no-tls":    strconv.FormatBool(defaultNoTls),
	}
)

func initCLIEnv() {
	dir := cleanAndExpandPath(os.Getenv(DATADIR_ENVVAR))
	if len(dir) <= 0 {
		return
	}
	datadir = dir
	statePath = filepath.Join(dir, STATE_FILE)
}

func main() {
	initCLIEnv()

	app := cli.NewApp()

	app.Version = version
	app.Name = "lastclick CLI"
	app.Usage = "Command line interface to interact with lastclickd"
	app.Flags = []cli.Flag{identityFlag}
	app.Commands = append(
		app.Commands,
		configCommand, registryCommand, roundCommand, stakeCommand,
		claimCommand, finalizeCommand, balanceCommand, faucetCommand,
	)

	app.Before = func(ctx *cli.Context) error {
		if _, err := os.Stat(datadir); os.IsNotExist(err) {
			return os.MkdirAll(datadir, os.ModeDir|0755)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	return filepath.Clean(os.ExpandEnv(path))
}

func getState() (map[string]string, error) {
	file, err := os.ReadFile(statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := setInitialState(); err != nil {
			return nil, err
		}
		return initialState, nil
	}

	data := map[string]string{}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, err
	}

	return data, nil
}

func setInitialState() error {
	jsonString, err := json.Marshal(initialState)
	if err != nil {
		return err
	}
	return os.WriteFile(statePath, jsonString, 0600)
}

func setState(data map[string]string) error {
	currentData, err := getState()
	if err != nil {
		return err
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0600); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonStr))
}

// callerContext returns a context carrying the identity given with the
// --identity flag or, if missing, the one stored in the local state.
func callerContext(ctx *cli.Context) (context.Context, error) {
	identity := ctx.String(identityFlag.Name)
	if len(identity) <= 0 {
		state, err := getState()
		if err != nil {
			return nil, err
		}
		identity = state["identity"]
	}
	if len(identity) <= 0 {
		return nil, errors.New(
			"missing identity, use --identity or `config set identity <name>`",
		)
	}

	return metadata.AppendToOutgoingContext(
		ctx.Context, lastclickv1.CallerIdentityKey, identity,
	), nil
}

func getServiceClient() (lastclickv1.GameServiceClient, func(), error) {
	conn, err := getClientConn()
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		// nolint:all
		conn.Close()
	}

	return lastclickv1.NewGameServiceClient(conn), cleanup, nil
}

func getClientConn() (*grpc.ClientConn, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	address, ok := state["rpcserver"]
	if !ok {
		return nil, errors.New("set rpcserver with `config set rpcserver`")
	}

	creds := insecure.NewCredentials()
	noTls, _ := strconv.ParseBool(state["no-tls"])
	if !noTls {
		certPath, ok := state["tls-cert"]
		if !ok {
			return nil, errors.New("set the daemon certificate path with `config set tls-cert`")
		}
		creds, err = credentials.NewClientTLSFromFile(cleanAndExpandPath(certPath), "")
		if err != nil {
			return nil, err
		}
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to RPC server: %v", err)
	}

	return conn, nil
}

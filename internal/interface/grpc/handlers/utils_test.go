package handlers_test

import (
	"testing"

	"github.com/lastclick-network/lastclick/internal/core/application"
	"github.com/lastclick-network/lastclick/internal/infrastructure/clock"
	"github.com/lastclick-network/lastclick/internal/infrastructure/db"
	"github.com/lastclick-network/lastclick/internal/infrastructure/ledger"
	"github.com/lastclick-network/lastclick/internal/interface/grpc/handlers"
	lastclickv1 "github.com/lastclick-network/lastclick/pkg/api/v1"
	"github.com/stretchr/testify/require"
)

const (
	operator = "operator"
	alice    = "alice"
	bob      = "bob"

	stake    = uint64(100)
	duration = int64(60)
)

func newTestHandler(t *testing.T) (lastclickv1.GameServiceServer, *clock.ManualClock) {
	repoManager, err := db.NewService(db.ServiceConfig{
		DataStoreType:   "badger",
		DataStoreConfig: []interface{}{"", nil},
	})
	require.NoError(t, err)

	svc, err := application.NewService(
		application.Config{EnableFaucet: true},
		repoManager, ledger.NewService(repoManager), nil,
	)
	require.NoError(t, err)
	t.Cleanup(svc.Stop)

	clk := clock.NewManualClock(1000)
	return handlers.NewGameHandler(svc, clk), clk
}

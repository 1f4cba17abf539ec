package grpcservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/lastclick-network/lastclick/internal/config"
	lastclickv1 "github.com/lastclick-network/lastclick/pkg/api/v1"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpchealth "google.golang.org/grpc/health/grpc_health_v1"
)

func TestService(t *testing.T) {
	datadir := t.TempDir()
	appConfig := &config.Config{
		Datadir:      datadir,
		DbType:       "sqlite",
		DbDir:        filepath.Join(datadir, "db"),
		LogLevel:     4,
		EnableFaucet: true,
		Operator:     "operator",
	}

	svc, err := NewService(Config{Datadir: datadir, NoTLS: true}, appConfig)
	require.NoError(t, err)
	require.NoError(t, svc.Start())
	t.Cleanup(svc.Stop)

	addr := svc.(*service).listener.Addr().String()

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() {
		// nolint:all
		conn.Close()
	})
	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		resp, err := grpchealth.NewHealthClient(conn).Check(ctx, &grpchealth.HealthCheckRequest{})
		require.NoError(t, err)
		require.Equal(t, grpchealth.HealthCheckResponse_SERVING, resp.GetStatus())
	})

	t.Run("grpc", func(t *testing.T) {
		resp, err := lastclickv1.NewGameServiceClient(conn).GetRegistry(
			ctx, &lastclickv1.GetRegistryRequest{},
		)
		require.NoError(t, err)
		require.Equal(t, "operator", resp.Registry.Operator)
	})

	t.Run("rest", func(t *testing.T) {
		resp, err := http.Get("http://" + addr + "/v1/registry")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body lastclickv1.GetRegistryResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "operator", body.Registry.Operator)
	})
}

func TestAutoInitializeKeepsExistingOperator(t *testing.T) {
	datadir := t.TempDir()
	newAppConfig := func(operator string) *config.Config {
		return &config.Config{
			Datadir:  datadir,
			DbType:   "badger",
			DbDir:    filepath.Join(datadir, "db"),
			LogLevel: 4,
			Operator: operator,
		}
	}

	first := newAppConfig("operator")
	require.NoError(t, first.Validate())
	s := &service{appConfig: first}
	require.NoError(t, s.autoInitialize())
	appSvc, err := first.AppService()
	require.NoError(t, err)
	appSvc.Stop()

	second := newAppConfig("someone-else")
	require.NoError(t, second.Validate())
	s = &service{appConfig: second}
	require.NoError(t, s.autoInitialize())

	appSvc, err = second.AppService()
	require.NoError(t, err)
	defer appSvc.Stop()

	registry, err := appSvc.GetRegistry(context.Background(), second.Clock().Now())
	require.NoError(t, err)
	require.Equal(t, "operator", registry.Operator)
}

func TestRouter(t *testing.T) {
	grpcHits, restHits := 0, 0
	grpcServer := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { grpcHits++ })
	restGateway := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { restHits++ })
	handler := router(grpcServer, restGateway)

	fixtures := []struct {
		method      string
		contentType string
		rest        bool
	}{
		{http.MethodGet, "", true},
		{http.MethodPost, "application/json", true},
		{http.MethodPost, "application/json; charset=utf-8", true},
		{http.MethodPost, "application/grpc", false},
		{http.MethodPost, "application/grpc+json", false},
	}
	for _, f := range fixtures {
		grpcHits, restHits = 0, 0
		req := httptest.NewRequest(f.method, "/v1/registry", nil)
		if len(f.contentType) > 0 {
			req.Header.Set("Content-Type", f.contentType)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if f.rest {
			require.Equal(t, 1, restHits, f.contentType)
			require.Zero(t, grpcHits, f.contentType)
		} else {
			require.Equal(t, 1, grpcHits, f.contentType)
			require.Zero(t, restHits, f.contentType)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v1/rounds", nil))
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestTLSKeyCert(t *testing.T) {
	cfg := Config{Datadir: t.TempDir(), TLSExtraIPs: []string{"10.0.0.1"}}
	require.NoError(t, cfg.Validate())
	require.NoError(t, generateTLSKeyCert(cfg.tlsDatadir(), cfg.TLSExtraIPs, nil))

	tlsConfig, err := cfg.tlsConfig()
	require.NoError(t, err)
	require.Len(t, tlsConfig.Certificates, 1)

	// A second run reuses the existing pair.
	require.NoError(t, generateTLSKeyCert(cfg.tlsDatadir(), cfg.TLSExtraIPs, nil))

	require.Error(t, Config{Datadir: t.TempDir(), TLSExtraIPs: []string{"nope"}}.Validate())
}

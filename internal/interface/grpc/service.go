package grpcservice

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/lastclick-network/lastclick/internal/config"
	"github.com/lastclick-network/lastclick/internal/core/domain"
	interfaces "github.com/lastclick-network/lastclick/internal/interface"
	"github.com/lastclick-network/lastclick/internal/interface/grpc/handlers"
	"github.com/lastclick-network/lastclick/internal/interface/grpc/interceptors"
	lastclickv1 "github.com/lastclick-network/lastclick/pkg/api/v1"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	grpchealth "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	tlsKeyFile  = "key.pem"
	tlsCertFile = "cert.pem"
	tlsFolder   = "tls"
)

type service struct {
	config     Config
	appConfig  *config.Config
	server     *http.Server
	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
}

func NewService(
	svcConfig Config, appConfig *config.Config,
) (interfaces.Service, error) {
	if err := svcConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service config: %s", err)
	}
	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid app config: %s", err)
	}

	if !svcConfig.insecure() {
		if err := generateTLSKeyCert(
			svcConfig.tlsDatadir(), svcConfig.TLSExtraIPs, svcConfig.TLSExtraDomains,
		); err != nil {
			return nil, err
		}
		log.Debugf("generated TLS key pair at path: %s", svcConfig.tlsDatadir())
	}

	return &service{config: svcConfig, appConfig: appConfig}, nil
}

func (s *service) Start() error {
	tlsConfig, err := s.config.tlsConfig()
	if err != nil {
		return err
	}

	if err := s.newServer(tlsConfig); err != nil {
		return err
	}

	appSvc, err := s.appConfig.AppService()
	if err != nil {
		return err
	}
	if err := appSvc.Start(); err != nil {
		return fmt.Errorf("failed to start app service: %s", err)
	}
	log.Info("started app service")

	if err := s.autoInitialize(); err != nil {
		return err
	}

	lis, err := net.Listen("tcp", s.config.address())
	if err != nil {
		return err
	}
	s.listener = lis

	if s.config.insecure() {
		// nolint:all
		go s.server.Serve(lis)
	} else {
		// nolint:all
		go s.server.ServeTLS(lis, "", "")
	}
	s.health.SetServingStatus("", grpchealth.HealthCheckResponse_SERVING)
	log.Infof("started listening at %s", lis.Addr())

	return nil
}

func (s *service) Stop() {
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.server != nil {
		//nolint:all
		s.server.Shutdown(context.Background())
		log.Info("stopped grpc server")
	}

	appSvc, _ := s.appConfig.AppService()
	if appSvc != nil {
		appSvc.Stop()
		log.Info("stopped app service")
	}
}

func (s *service) newServer(tlsConfig *tls.Config) error {
	grpcConfig := []grpc.ServerOption{
		interceptors.UnaryInterceptor(),
		interceptors.StreamInterceptor(),
	}
	creds := insecure.NewCredentials()
	if !s.config.insecure() {
		creds = credentials.NewTLS(tlsConfig)
	}
	grpcConfig = append(grpcConfig, grpc.Creds(creds))

	grpcServer := grpc.NewServer(grpcConfig...)

	appSvc, err := s.appConfig.AppService()
	if err != nil {
		return err
	}
	gameHandler := handlers.NewGameHandler(appSvc, s.appConfig.Clock())
	lastclickv1.RegisterGameServiceServer(grpcServer, gameHandler)

	healthSvc := health.NewServer()
	healthSvc.SetServingStatus("", grpchealth.HealthCheckResponse_NOT_SERVING)
	grpchealth.RegisterHealthServer(grpcServer, healthSvc)

	restGateway := handlers.NewRestGateway(gameHandler)

	handler := router(grpcServer, restGateway)
	mux := http.NewServeMux()
	mux.Handle("/", handler)

	httpServerHandler := http.Handler(mux)
	if s.config.insecure() {
		httpServerHandler = h2c.NewHandler(httpServerHandler, &http2.Server{})
	}

	s.grpcServer = grpcServer
	s.health = healthSvc
	s.server = &http.Server{
		Addr:      s.config.address(),
		Handler:   httpServerHandler,
		TLSConfig: tlsConfig,
	}

	return nil
}

// autoInitialize creates the registry on behalf of the configured operator
// the first time the daemon starts.
func (s *service) autoInitialize() error {
	operator := s.appConfig.Operator
	if len(operator) <= 0 {
		return nil
	}

	ctx := context.Background()
	appSvc, _ := s.appConfig.AppService()

	registry, err := appSvc.GetRegistry(ctx, s.appConfig.Clock().Now())
	if err == nil {
		if registry.Operator != operator {
			log.Warnf(
				"registry already owned by %s, ignoring configured operator %s",
				registry.Operator, operator,
			)
		}
		return nil
	}
	if !errors.Is(err, domain.ErrRegistryNotInitialized) {
		return fmt.Errorf("failed to get registry: %s", err)
	}

	if _, err := appSvc.InitializeRegistry(
		ctx, operator, s.appConfig.Clock().Now(),
	); err != nil {
		return fmt.Errorf("failed to initialize registry: %s", err)
	}
	log.Infof("initialized registry with operator %s", operator)
	return nil
}

func router(grpcServer http.Handler, restGateway http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isOptionRequest(r) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "*")
			w.Header().Add("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			return
		}

		if isHttpRequest(r) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", "*")
			w.Header().Add("Access-Control-Allow-Methods", "POST, GET, OPTIONS")

			restGateway.ServeHTTP(w, r)
			return
		}
		grpcServer.ServeHTTP(w, r)
	})
}

func isOptionRequest(req *http.Request) bool {
	return req.Method == http.MethodOptions
}

func isHttpRequest(req *http.Request) bool {
	return req.Method == http.MethodGet ||
		strings.Contains(req.Header.Get("Content-Type"), "application/json")
}

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	httpadapter "github.com/smartrx/smartrx/internal/drugsapi/adapters/http"
	"github.com/smartrx/smartrx/internal/drugsapi/adapters/memory"
	pgadapter "github.com/smartrx/smartrx/internal/drugsapi/adapters/postgres"
	"github.com/smartrx/smartrx/internal/drugsapi/application"
	"github.com/smartrx/smartrx/internal/drugsapi/ports"
	platformpg "github.com/smartrx/smartrx/internal/platform/postgres"
	"github.com/smartrx/smartrx/internal/platform/token"
)

// Runtime owns the drugs API's servers and teardown hooks.
type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	cleanupFn  func()
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("bootstrapping smartrx drugs api", "http_port", cfg.HTTPPort, "grpc_port", cfg.GRPCPort)

	var drugs ports.DrugRepository
	cleanup := func() {}
	if cfg.DatabaseURL != "" {
		db, err := platformpg.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pgadapter.Migrate(ctx, db); err != nil {
			_ = platformpg.Close(db)
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		drugs = pgadapter.NewDrugRepository(db)
		cleanup = func() { _ = platformpg.Close(db) }
	} else {
		logger.Warn("no database configured, using in-memory drug store")
		drugs = memory.NewDrugStore()
	}

	// The validator shares only configuration with the auth service; there
	// is no runtime dependency between the two.
	validator, err := token.NewValidator(cfg.Token)
	if err != nil {
		cleanup()
		return nil, err
	}

	handler := httpadapter.NewHandler(application.NewService(drugs), validator)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           httpadapter.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("listen grpc: %w", err)
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		cleanupFn:  cleanup,
	}, nil
}

// Run serves until the context is cancelled or a termination signal arrives.
func (rt *Runtime) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer rt.cleanupFn()

	errCh := make(chan error, 2)
	go func() {
		rt.logger.Info("http server listening", "addr", rt.httpServer.Addr)
		if err := rt.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		rt.logger.Info("grpc health server listening", "addr", rt.grpcLis.Addr().String())
		if err := rt.grpcServer.Serve(rt.grpcLis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rt.grpcServer.GracefulStop()
	if err := rt.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	rt.logger.Info("drugs api stopped")
	return nil
}

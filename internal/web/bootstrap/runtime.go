package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartrx/smartrx/internal/web/apiclient"
	"github.com/smartrx/smartrx/internal/web/handlers"
	"github.com/smartrx/smartrx/internal/web/session"
)

// Runtime owns the front end's HTTP server and teardown hooks.
type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	cleanupFn  func()
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("bootstrapping smartrx web", "http_port", cfg.HTTPPort,
		"auth_api", cfg.AuthAPIURL, "drugs_api", cfg.DrugsAPIURL)

	var sessions session.Store
	cleanup := func() {}
	if cfg.RedisURL != "" {
		client, err := session.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		sessions = session.NewRedisStore(client)
		cleanup = func() { _ = client.Close() }
	} else {
		logger.Warn("no redis configured, using in-memory session store")
		sessions = session.NewMemoryStore()
	}

	handler, err := handlers.NewHandler(
		apiclient.NewAuthClient(cfg.AuthAPIURL),
		apiclient.NewDrugsClient(cfg.DrugsAPIURL),
		sessions,
		cfg.SessionTTL,
	)
	if err != nil {
		cleanup()
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handlers.NewRouter(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		cleanupFn:  cleanup,
	}, nil
}

// Run serves until the context is cancelled or a termination signal arrives.
func (rt *Runtime) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer rt.cleanupFn()

	errCh := make(chan error, 1)
	go func() {
		rt.logger.Info("http server listening", "addr", rt.httpServer.Addr)
		if err := rt.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	if err := rt.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	rt.logger.Info("web front end stopped")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/config"
	httpserver "github.com/rezkam/todo/internal/infrastructure/http"
	"github.com/rezkam/todo/internal/infrastructure/http/handler"
	"github.com/rezkam/todo/internal/infrastructure/observability"
)

// providerShutdownTimeout bounds flushing of telemetry providers on exit.
const providerShutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		// slog may not be initialized if config loading failed
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}

	// Root context, cancelled on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	otelCfg := observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
	}

	lp, logger, err := observability.InitLogger(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer shutdownProvider("logger", lp.Shutdown)
	slog.SetDefault(logger)

	tp, err := observability.InitTracerProvider(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("failed to init tracer provider: %w", err)
	}
	defer shutdownProvider("tracer", tp.Shutdown)

	mp, err := observability.InitMeterProvider(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("failed to init meter provider: %w", err)
	}
	defer shutdownProvider("meter", mp.Shutdown)

	slog.InfoContext(ctx, "starting todo service",
		"storage", cfg.Database.Type,
		"addr", cfg.HTTP.Addr(),
		"otel_enabled", otelCfg.Enabled)

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	slog.InfoContext(ctx, "storage initialized",
		"type", cfg.Database.Type,
		"dsn", maskPassword(cfg.Database.DSN),
		"max_conns", cfg.Database.MaxConns,
		"acquire_timeout", cfg.Database.AcquireTimeout)

	svc := todo.NewService(store)

	server := httpserver.NewAPIServer(handler.NewRouter(svc), svc, httpserver.ServerConfig{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		CORSOrigins:       cfg.HTTP.CORSOrigins,
		ServiceName:       cfg.Observability.ServiceName,
	})

	errResult := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")

		// ctx is already cancelled; shutdown gets its own deadline
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelShutdown()

		newCleanup(shutdownCtx, server, store)()
		return nil
	case err := <-errResult:
		newCleanup(context.Background(), nil, store)()
		return err
	}
}

// shutdownProvider flushes a telemetry provider with a bounded timeout.
func shutdownProvider(name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), providerShutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown provider", "provider", name, "error", err)
	}
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	if connStr == "" {
		return ""
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}

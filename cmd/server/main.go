// Package main is the entry point for the todo service. It loads an optional
// .env file, wires all dependencies using samber/do v2, starts the HTTP
// server, and handles graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http"
	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/http/middleware"

	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/clients/partiql"
	"github.com/jsamuelsen11/todo-partiql-service/internal/adapters/ratelimit"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/config"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/health"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-partiql-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/todo-partiql-service/internal/ports"
)

const (
	redisClientName       = "ratelimit.redis"
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	profile := config.Profile()

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, providers.Metrics)

	registerDependencies(ctx, injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	registry.Register(do.MustInvoke[*httpclient.Client](injector))
	if cfg.RateLimit.Enabled {
		if checker, ok := do.MustInvoke[ports.RateLimiter](injector).(ports.HealthChecker); ok {
			registry.Register(checker)
		}
	}

	logger.Info("service configured",
		slog.String("profile", profile),
		slog.String("table", cfg.Store.TableName),
		slog.Bool("rate_limit", cfg.RateLimit.Enabled),
		slog.String("rate_limit_backend", cfg.RateLimit.Backend),
	)

	if err := server.Listen(); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Serve()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Serve to return.
	<-serverErr

	// Stop background workers and release clients.
	stop()
	if cfg.RateLimit.Enabled && cfg.RateLimit.Backend == "redis" {
		rdb := do.MustInvokeNamed[*redis.Client](injector, redisClientName)
		if err := rdb.Close(); err != nil {
			logger.Error("redis close error", slog.Any("error", err))
		}
	}

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := providers.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

func registerDependencies(ctx context.Context, injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Store, "dynamodb", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*partiql.Client, error) {
		httpClient := do.MustInvoke[*httpclient.Client](i)
		api, err := partiql.NewDynamoDB(ctx, &cfg.Store, httpClient)
		if err != nil {
			return nil, err
		}
		return partiql.NewClient(api, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.TodoStore, error) {
		client := do.MustInvoke[*partiql.Client](i)
		return partiql.NewTodoStore(client, cfg.Store.TableName), nil
	})

	do.ProvideNamed(injector, redisClientName, func(_ do.Injector) (*redis.Client, error) {
		return redis.NewClient(&redis.Options{
			Addr:     cfg.RateLimit.Redis.Addr,
			Password: cfg.RateLimit.Redis.Password,
			DB:       cfg.RateLimit.Redis.DB,
		}), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.RateLimiter, error) {
		rl := cfg.RateLimit
		if rl.Backend == "redis" {
			rdb := do.MustInvokeNamed[*redis.Client](i, redisClientName)
			return ratelimit.NewRedis(rdb, rl.Redis.KeyPrefix, rl.Max, rl.Window), nil
		}
		mem := ratelimit.NewMemory(rl.Max, rl.Window)
		mem.StartJanitor(ctx, janitorInterval(rl.Window))
		return mem, nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.TodoHandler, error) {
		store := do.MustInvoke[ports.TodoStore](i)
		return handlers.NewTodoHandler(store), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		todoH := do.MustInvoke[*handlers.TodoHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		mws := []func(nethttp.Handler) nethttp.Handler{
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.RequestTimeout),
			middleware.ParseJSON(),
		}
		if cfg.RateLimit.Enabled {
			limiter := do.MustInvoke[ports.RateLimiter](i)
			mws = append(mws, middleware.RateLimit(limiter, middleware.RateLimitOptions{
				PathPrefix:        cfg.RateLimit.PathPrefix,
				TrustForwardedFor: cfg.RateLimit.TrustForwardedFor,
				Backend:           cfg.RateLimit.Backend,
				Metrics:           metrics,
			}))
		}

		return adapthttp.NewRouter(todoH, healthH, mws...), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// janitorInterval sweeps expired windows a few times per window, bounded
// to keep short test windows from spinning.
func janitorInterval(window time.Duration) time.Duration {
	return max(window/4, time.Second)
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"gandalf.app/compiler/common/id"
	"gandalf.app/compiler/common/logger"
	"gandalf.app/compiler/common/otel"
	"gandalf.app/compiler/core/config"
	"gandalf.app/compiler/internal/compiler"
	"gandalf.app/compiler/internal/delegate"
	"gandalf.app/compiler/internal/http/handler"
	"gandalf.app/compiler/internal/http/middleware"
	httprouter "gandalf.app/compiler/internal/http/router"
	"gandalf.app/compiler/internal/session"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		// Can't use slog yet, OTel failed before logger setup
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "compiler starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(cfg.NodeID); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	sessions, err := setupSessions(ctx, cfg.Session)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up session store", "error", err)
		os.Exit(1)
	}

	delegateRouter := delegate.NewRouter(delegate.RouterOptions{
		EnableFast: cfg.Delegate.EnableFast,
		EnableDeep: cfg.Delegate.EnableDeep,
		ForceTier:  delegate.Tier(cfg.Delegate.ForceTier),
	})

	comp := compiler.New()
	if cfg.Delegate.Enabled() {
		client, err := delegate.NewClient(delegate.Config{
			APIKey:  cfg.Delegate.APIKey,
			BaseURL: cfg.Delegate.BaseURL,
			Models: delegate.Models{
				Fast:     cfg.Delegate.FastModel,
				Balanced: cfg.Delegate.BalancedModel,
				Deep:     cfg.Delegate.DeepModel,
			},
		}, delegateRouter)
		if err != nil {
			slog.ErrorContext(ctx, "failed to set up delegate client", "error", err)
			os.Exit(1)
		}
		comp = comp.WithAssistant(delegate.NewAssistant(client))
		slog.InfoContext(ctx, "delegate enabled", "balanced_model", cfg.Delegate.BalancedModel)
	} else {
		slog.InfoContext(ctx, "delegate disabled, running fully rule-based")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, comp, sessions, delegateRouter)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupSessions(ctx context.Context, cfg config.SessionConfig) (session.Store, error) {
	if !cfg.UsesRedis() {
		slog.InfoContext(ctx, "session store: in-memory", "ttl", cfg.TTL)
		return session.NewMemoryStore(cfg.TTL), nil
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	slog.InfoContext(ctx, "session store: redis", "ttl", cfg.TTL)
	return session.NewRedisStore(redisClient, cfg.TTL), nil
}

func setupRouter(cfg config.Config, comp *compiler.Compiler, sessions session.Store, delegateRouter *delegate.Router) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span, Recovery catches panics, Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	intentHandler := handler.NewIntentHandler(comp, sessions, cfg.Compiler)
	statusHandler := handler.NewDelegateStatusHandler(delegateRouter, cfg.Delegate)
	httprouter.SetupRoutes(router, intentHandler, statusHandler)

	return router
}

const banner = `
 ██████╗  █████╗ ███╗   ██╗██████╗  █████╗ ██╗     ███████╗
██╔════╝ ██╔══██╗████╗  ██║██╔══██╗██╔══██╗██║     ██╔════╝
██║  ███╗███████║██╔██╗ ██║██║  ██║███████║██║     █████╗
██║   ██║██╔══██║██║╚██╗██║██║  ██║██╔══██║██║     ██╔══╝
╚██████╔╝██║  ██║██║ ╚████║██████╔╝██║  ██║███████╗██║
 ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝╚═════╝ ╚═╝  ╚═╝╚══════╝╚═╝
`

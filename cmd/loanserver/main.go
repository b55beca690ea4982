// Command loanserver serves the loan lifecycle over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/AntonStoeckl/loan-lifecycle-go/lending/catalog"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/core"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/httpapi"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/lifecycle"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/moderationgateway"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/notification"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/requestgateway"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell/config"
	"github.com/AntonStoeckl/loan-lifecycle-go/lending/shell/storage"
	"github.com/AntonStoeckl/loan-lifecycle-go/loanstore/oteladapters"
)

const instrumentationName = "github.com/AntonStoeckl/loan-lifecycle-go"

//nolint:funlen
func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	envFile := flag.String("env-file", ".env", "path to an optional .env file")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.Observability.LogLevel)}))
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slogger.Handler())

	obs := lifecycle.ObservabilityConfig{
		Logger:           slogger,
		ContextualLogger: logger,
	}

	if cfg.Observability.Enabled {
		providers, provErr := config.NewObservabilityProviders(ctx, cfg.Observability.ServiceName)
		if provErr != nil {
			log.Fatalf("Failed to create observability providers: %v", provErr)
		}
		defer func() {
			if shutdownErr := providers.Shutdown(); shutdownErr != nil {
				slogger.Error("observability shutdown failed", "error", shutdownErr)
			}
		}()

		obs.MetricsCollector = oteladapters.NewMetricsCollector(otel.Meter(instrumentationName))
		obs.TracingCollector = oteladapters.NewTracingCollector(otel.Tracer(instrumentationName))
	}

	store, err := storage.Open(ctx, cfg.Database, obs)
	if err != nil {
		log.Fatalf("Failed to open the loan store: %v", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slogger.Error("closing the loan store failed", "error", closeErr)
		}
	}()

	slogger.Info("loan store ready", "engine", cfg.Database.Engine, "adapter", cfg.Database.AdapterType)

	policy := core.ExtensionPolicy{MaxExtensions: cfg.Lending.MaxExtensions}

	service, err := lifecycle.NewService(
		store.Loans,
		lifecycle.WithExtensionPolicy(policy),
		lifecycle.WithObservability(obs),
	)
	if err != nil {
		log.Fatalf("Failed to create the lifecycle service: %v", err)
	}

	viewOptions := []lifecycle.ViewsOption{
		lifecycle.WithViewsExtensionPolicy(policy),
		lifecycle.WithViewsObservability(obs),
	}
	if store.Outbox != nil {
		viewOptions = append(viewOptions, lifecycle.WithNotificationOutbox(store.Outbox))
	}

	views, err := lifecycle.NewViews(store.Loans, viewOptions...)
	if err != nil {
		log.Fatalf("Failed to create the loan views: %v", err)
	}

	emitter := buildEmitter(cfg, store, logger)

	books := catalog.NewGoogleBooksClient(
		catalog.WithBaseURL(cfg.Catalog.BaseURL),
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.Catalog.Timeout}),
		catalog.WithRateLimit(cfg.Catalog.RequestsPerSecond),
	)

	requests := requestgateway.NewGateway(
		service,
		views,
		books,
		requestgateway.WithEmitter(emitter),
		requestgateway.WithContextualLogger(logger),
	)
	moderation := moderationgateway.NewGateway(
		service,
		views,
		moderationgateway.WithEmitter(emitter),
		moderationgateway.WithContextualLogger(logger),
	)

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(
		requests,
		moderation,
		httpapi.WithAllowOrigins(cfg.HTTP.CORSOrigins...),
		httpapi.WithSubmitRateLimit(cfg.HTTP.RequestsPerMinute),
		httpapi.WithContextualLogger(logger),
	)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slogger.Info("http server listening", "addr", cfg.HTTP.Addr, "max_extensions", policy.MaxExtensions)
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	select {
	case <-ctx.Done():
		slogger.Info("shutdown signal received")
	case serveErr := <-errChan:
		slogger.Error("http server failed", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slogger.Error("http server shutdown failed", "error", err)
	}

	slogger.Info("loan server stopped")
}

func buildEmitter(cfg config.Config, store *storage.Storage, logger *oteladapters.SlogBridgeLogger) notification.Emitter {
	emitters := notification.FanOut{notification.NewLogEmitter(logger)}

	if store.Outbox != nil {
		emitters = append(emitters, notification.NewOutboxEmitter(store.Outbox))
	}

	if cfg.Redis.Addr != "" {
		client := notification.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		emitters = append(emitters, notification.NewRedisEmitter(client))
		store.OnClose(client.Close)
	}

	return emitters
}

func parseLogLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}

	return level
}

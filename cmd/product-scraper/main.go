package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/maltedev/product-scraper/internal/api"
	"github.com/maltedev/product-scraper/internal/config"
	"github.com/maltedev/product-scraper/internal/events"
	"github.com/maltedev/product-scraper/internal/fetcher"
	"github.com/maltedev/product-scraper/internal/monitoring"
	"github.com/maltedev/product-scraper/internal/parser"
	"github.com/maltedev/product-scraper/internal/scraper"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logging
	level, _ := config.ParseLevel(cfg.Logging.Level)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fetchOpts := []fetcher.Option{fetcher.WithTimeout(cfg.Fetch.Timeout)}
	if cfg.Fetch.UserAgent != "" {
		fetchOpts = append(fetchOpts, fetcher.WithUserAgent(cfg.Fetch.UserAgent))
	}

	metrics := monitoring.NewMetrics()

	var publisher scraper.Publisher
	if cfg.EventsEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			redisClient.Close()
			return fmt.Errorf("failed to connect to redis: %w", err)
		}

		p := events.NewPublisher(redisClient, cfg.Redis.Stream, cfg.Service.Name, logger)
		defer p.Close()
		publisher = p
		logger.Info("scrape events enabled", "redis", cfg.Redis.Addr, "stream", cfg.Redis.Stream)
	}

	service := scraper.NewService(
		fetcher.New(fetchOpts...),
		parser.NewProductParser(),
		publisher,
		metrics,
		logger,
	)

	handlers := api.NewHandlers(service, cfg, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(handlers, metrics.Handler()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", "port", cfg.Server.Port, "service", cfg.Service.Name, "version", cfg.Service.Version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"onmodel/internal/batchstore"
	"onmodel/internal/generation"
	"onmodel/internal/http/handlers"
	httpapi "onmodel/internal/http/httpapi"
	"onmodel/internal/infra"
	"onmodel/internal/presets"
	"onmodel/internal/providers/replicate"
	"onmodel/internal/storage"
)

const purgeInterval = 15 * time.Minute

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lib, err := presets.LoadFile(cfg.PresetsFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load presets")
	}

	store, cleanup, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("store", cfg.BatchStore).Msg("failed to open batch store")
	}
	defer cleanup()

	// one limiter for every batch so provider pacing holds across requests
	limiter := replicate.NewLimiter(cfg.ProviderRatePerMinute)
	orchestrator := generation.NewOrchestrator(
		func(creds generation.Credentials) generation.PredictionClient {
			return replicate.NewClient(replicate.Options{
				APIToken: creds.APIToken,
				BaseURL:  cfg.ReplicateBaseURL,
				Logger:   &logger,
				Limiter:  limiter,
			})
		},
		generation.DispatcherOptions{Presets: lib, Logger: &logger},
	)

	app := handlers.NewApp(cfg, logger, lib, orchestrator, store)
	if cfg.ReferenceArchiveDir != "" {
		archive, err := storage.NewFileStore(cfg.ReferenceArchiveDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open reference archive")
		}
		app.Archive = archive
	}
	if cfg.ReplicateAPIToken == "" {
		logger.Warn().Msg("REPLICATE_API_TOKEN is not set; generation requests will be rejected")
	}

	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		return server.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if purger, ok := store.(batchstore.Purger); ok {
		g.Go(func() error {
			purgeLoop(gctx, purger, logger)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return
	}
	logger.Info().Msg("server stopped")
}

func openStore(ctx context.Context, cfg *infra.Config, logger infra.Logger) (batchstore.Store, func(), error) {
	switch cfg.BatchStore {
	case infra.StorePostgres:
		pool, err := infra.NewDBPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := batchstore.NewPostgresStore(infra.NewSQLRunner(pool, logger), cfg.BatchTTL)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	case infra.StoreRedis:
		client, err := infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return batchstore.NewRedisStore(client, cfg.BatchTTL), func() { _ = client.Close() }, nil
	default:
		return batchstore.NewMemoryStore(cfg.BatchTTL), func() {}, nil
	}
}

func purgeLoop(ctx context.Context, purger batchstore.Purger, logger infra.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := purger.PurgeExpired(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("purge expired batches failed")
				continue
			}
			if n > 0 {
				logger.Info().Int64("deleted", n).Msg("purged expired batches")
			}
		}
	}
}

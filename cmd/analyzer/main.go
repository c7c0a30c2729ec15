package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"analyzer/internal/analyzer"
	"analyzer/internal/api"
	"analyzer/internal/config"
	"analyzer/internal/fetch"
	"analyzer/internal/hosting"
	"analyzer/internal/location"
	"analyzer/internal/monitoring"
	"analyzer/internal/news"
	"analyzer/internal/news/tavily"
	"analyzer/internal/reputation"
	"analyzer/internal/storage"
	"analyzer/internal/taxonomy"
	"analyzer/internal/website"

	"go.uber.org/zap"
)

func main() {
	// Initialize structured logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("could not load config", zap.Error(err))
	}

	// Load the versioned taxonomy data asset
	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		logger.Fatal("could not load taxonomy", zap.Error(err))
	}
	logger.Info("taxonomy loaded", zap.Int("version", tax.Version), zap.Int("keywords", len(tax.Keywords)))

	// Initialize optional storage layer
	var pgStore *storage.PostgresStore
	if cfg.PostgresURL != "" {
		pgStore, err = storage.NewPostgresStore(cfg.PostgresURL)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
	}
	var redisStore *storage.RedisStore
	if cfg.RedisAddr != "" {
		redisStore = storage.NewRedisStore(cfg.RedisAddr, time.Duration(cfg.CacheTTLHours)*time.Hour, logger)
	}

	// Initialize collaborators
	var searcher news.Searcher
	if cfg.TavilyAPIKey != "" {
		searcher = tavily.NewClient(cfg.TavilyAPIKey)
	} else {
		logger.Warn("no news search API key set, reputation signals will be unavailable")
	}
	greencheck := hosting.NewClient(cfg.GreencheckURL)

	// Initialize the signal pipeline
	metrics := monitoring.NewMetrics()
	var cache fetch.Cache
	if redisStore != nil {
		cache = redisStore
	}
	fetcher := fetch.New(time.Duration(cfg.FetchTimeout)*time.Second, cfg.MaxBodyBytes, cache, logger)
	webExtractor := website.NewExtractor(tax, greencheck, logger)
	repExtractor := reputation.NewExtractor(searcher, tax, logger)
	locLookup := location.NewLookup(tax)

	var archive analyzer.Archive
	if pgStore != nil {
		archive = pgStore
	}
	pipeline := analyzer.NewPipeline(fetcher, webExtractor, repExtractor, locLookup, archive, metrics, logger)
	orchestrator := analyzer.NewOrchestrator(pipeline, cfg.AnalyzeWorkers, logger)

	// Initialize API Server
	server := api.NewServer(cfg, pipeline, orchestrator, pgStore, redisStore, metrics, logger)

	// Graceful Shutdown
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	logger.Info("server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	if pgStore != nil {
		pgStore.Close()
	}

	logger.Info("server exiting")
}

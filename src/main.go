package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/refrainlabs/refrain/src/features/config"
	"github.com/refrainlabs/refrain/src/features/hosting"
	"github.com/refrainlabs/refrain/src/features/logging"
	"github.com/refrainlabs/refrain/src/features/lookup"
	"github.com/refrainlabs/refrain/src/features/metrics"
	"github.com/refrainlabs/refrain/src/infra/cache"
	"github.com/refrainlabs/refrain/src/infra/fetch"
	"github.com/refrainlabs/refrain/src/infra/sources/lyricsapi"
	"github.com/refrainlabs/refrain/src/infra/sources/songtexte"
	"github.com/refrainlabs/refrain/src/infra/sources/websearch"
	"github.com/refrainlabs/refrain/src/song"
)

func main() {
	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env file")
	}

	// Load configuration
	cfgManager, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := cfgManager.Get()

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	fetchCfg := fetch.Config{
		UserAgent: cfg.Fetcher.UserAgent,
		Timeout:   time.Duration(cfg.Fetcher.TimeoutSeconds) * time.Second,
		Retries:   cfg.Fetcher.Retries,
		Backoff:   time.Duration(cfg.Fetcher.BackoffMs) * time.Millisecond,
		Proxies:   cfg.Fetcher.Proxies,
	}

	// Each source gets its own fetcher so credentials and rate limits
	// stay scoped to the host they belong to.
	apiCfg := cfg.Sources[string(song.SourceLyricsAPI)]
	apiMiddlewares := []fetch.Middleware{
		fetch.WithRateLimit(time.Duration(apiCfg.RateLimitMs) * time.Millisecond),
	}
	if apiCfg.Secret != nil {
		apiMiddlewares = append(apiMiddlewares, fetch.WithHeader("Authorization", "Bearer "+*apiCfg.Secret))
	}
	apiFetcher := fetch.New(fetchCfg, apiMiddlewares...)

	aggCfg := cfg.Sources[string(song.SourceAggregator)]
	aggFetcher := fetch.New(fetchCfg, fetch.WithRateLimit(time.Duration(aggCfg.RateLimitMs)*time.Millisecond))

	webCfg := cfg.Sources[string(song.SourceWebSearch)]
	webFetcher := fetch.New(fetchCfg, fetch.WithRateLimit(time.Duration(webCfg.RateLimitMs)*time.Millisecond))

	// Sources are consulted in this order until one yields lyrics.
	sources := []lookup.Source{
		lyricsapi.New(apiCfg.Enabled && apiCfg.Secret != nil, apiCfg.BaseURL, "", apiFetcher),
		songtexte.New(aggCfg.Enabled, aggCfg.BaseURL, aggFetcher),
		websearch.New(webCfg.Enabled, webCfg.BaseURL, webFetcher),
	}

	resultCache := cache.New[lookup.Response](time.Duration(cfg.Cache.TTLMinutes) * time.Minute)
	if cfg.Cache.SweepMinutes > 0 {
		resultCache.StartSweep(time.Duration(cfg.Cache.SweepMinutes) * time.Minute)
		defer resultCache.Stop()
	}

	recorder := metrics.NewRecorder()
	lookupService := lookup.NewService(sources, resultCache, recorder)
	lookupHandler := lookup.NewHandler(lookupService)

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, lookupHandler, recorder)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfg.Server.Port)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}

// Command blobserver runs the blob cache HTTP service: a multipart upload
// and key-addressed download surface backed by an in-memory LRU cache.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/p-blackswan/blobcache/internal/api"
	"github.com/p-blackswan/blobcache/internal/blobcache"
	"github.com/p-blackswan/blobcache/internal/config"
	"github.com/p-blackswan/blobcache/internal/health"
	"github.com/p-blackswan/blobcache/internal/metrics"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	if os.Getenv("ENVIRONMENT") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	log.Logger = logger

	configPath := "config/config.toml"
	if p := os.Getenv("BLOBCACHE_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}

	logger.Info().
		Uint16("server_port", cfg.ServerPort).
		Str("cache_mode", cfg.CacheMode).
		Int("cache_size", cfg.CacheSize).
		Msg("starting blob cache service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	cache, err := newCache(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to construct cache")
	}

	m := metrics.New()

	checker := health.NewChecker(logger)
	checker.Register("cache", health.CacheUtilizationCheck(cache.Len, cache.Cap, 0.9))

	apiServer := api.NewServer(cache, m, checker, logger)

	probeMux := http.NewServeMux()
	probeMux.HandleFunc("/health", health.LivenessHandler())
	probeMux.HandleFunc("/ready", checker.ReadinessHandler())
	probeMux.Handle("/metrics", m.Handler())

	probeServer := &http.Server{
		Addr:         ":9090",
		Handler:      probeMux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info().Str("addr", probeServer.Addr).Msg("probe server starting")
		if err := probeServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("probe server error")
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := apiServer.Start(addr); err != nil {
			logger.Error().Err(err).Msg("blob cache API server error")
		}
	}()

	sig := <-sigCh
	logger.Info().Str("signal", sig.String()).Msg("shutting down gracefully")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("blob cache API server shutdown error")
	}
	if err := probeServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("probe server shutdown error")
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info().Msg("all goroutines stopped")
	case <-time.After(15 * time.Second):
		logger.Warn().Msg("forced shutdown after timeout")
	}

	logger.Info().Msg("blob cache service stopped")
}

// newCache builds the cache the config's cache_mode calls for. "capacity" is
// treated identically to "item"/"default" (bounded by cache_size); only
// "unlimited" removes the bound. See internal/config for the rationale.
func newCache(cfg *config.Config) (*blobcache.Safe[string, []byte], error) {
	if cfg.Unbounded() {
		return blobcache.NewUnbounded[string, []byte](), nil
	}
	return blobcache.NewBounded[string, []byte](cfg.CacheSize)
}

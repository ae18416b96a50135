// Package main provides the HTTP inspection server for nerdalert.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerdalert/nerdalert-go/internal/config"
	"github.com/nerdalert/nerdalert-go/internal/httpapi"
	"github.com/nerdalert/nerdalert-go/internal/memory"
	"github.com/nerdalert/nerdalert-go/internal/metrics"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("nerdalert-server starting", "version", version, "addr", cfg.HTTPAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	limits := memory.Limits{
		MaxSessions:         cfg.MaxSessions,
		MaxTopics:           cfg.MaxTopicsPerSession,
		MaxRecentMessages:   cfg.MaxRecentMessages,
		MaxCorrections:      cfg.MaxCorrections,
		RepetitionThreshold: cfg.RepetitionThreshold,
		CorrectionThreshold: cfg.CorrectionThreshold,
	}
	collector := metrics.NewCollector()
	mem := memory.NewManager(limits, memory.WordOverlapMatcher{}, logger, memory.WithMetrics(collector))

	api := httpapi.NewAPI(mem, collector, logger)
	if err := api.Serve(ctx, cfg.HTTPAddr); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

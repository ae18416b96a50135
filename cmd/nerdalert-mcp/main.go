// Package main provides the entry point for the nerdalert MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerdalert/nerdalert-go/internal/config"
	"github.com/nerdalert/nerdalert-go/internal/knowledge"
	"github.com/nerdalert/nerdalert-go/internal/memory"
	"github.com/nerdalert/nerdalert-go/internal/metrics"
	"github.com/nerdalert/nerdalert-go/internal/rag"
	"github.com/nerdalert/nerdalert-go/internal/search"
	"github.com/nerdalert/nerdalert-go/internal/server"
	"github.com/nerdalert/nerdalert-go/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("nerdalert-mcp starting",
		"version", version,
		"brave_configured", cfg.BraveConfigured(),
		"serper_configured", cfg.SerperConfigured(),
	)

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

	// Build the knowledge store and seed the curated entries
	vectorizer, err := knowledge.NewVectorizer(cfg)
	if err != nil {
		logger.Error("failed to create vectorizer", "error", err)
		os.Exit(1)
	}
	store := knowledge.NewStore(vectorizer, knowledge.WithRelevanceThreshold(cfg.RelevanceThreshold))
	if err := knowledge.Seed(ctx, store); err != nil {
		logger.Error("failed to seed knowledge base", "error", err)
		os.Exit(1)
	}
	logger.Info("knowledge base seeded", "entries", store.Len())

	collector := metrics.NewCollector()

	// Wire the search pipeline
	providers := []search.Provider{
		search.NewBraveProvider(cfg.BraveAPIKey, cfg.BraveConfigured(), nil),
		search.NewSerperProvider(cfg.SerperAPIKey, cfg.SerperConfigured(), nil),
	}
	controller := search.NewController(providers, search.ControllerConfig{
		FallbackEnabled: cfg.FallbackEnabled,
		MaxRetries:      cfg.MaxRetries,
		BaseDelay:       cfg.RetryBaseDelay,
		CallTimeout:     cfg.SearchTimeout,
		Metrics:         collector,
	}, logger)

	limits := memory.Limits{
		MaxSessions:         cfg.MaxSessions,
		MaxTopics:           cfg.MaxTopicsPerSession,
		MaxRecentMessages:   cfg.MaxRecentMessages,
		MaxCorrections:      cfg.MaxCorrections,
		RepetitionThreshold: cfg.RepetitionThreshold,
		CorrectionThreshold: cfg.CorrectionThreshold,
	}

	// Create and setup server
	srv := server.New(version, logger)
	srv.Setup()

	// Register tools
	deps := &tools.Dependencies{
		Search:  search.NewService(controller, logger),
		RAG:     rag.NewService(store, cfg.MaxEntryAgeDays, logger),
		Memory:  memory.NewManager(limits, memory.WordOverlapMatcher{}, logger, memory.WithMetrics(collector)),
		Metrics: collector,
		Logger:  logger,
	}
	tools.RegisterAll(srv.MCPServer(), deps)
	logger.Info("tools registered", "count", 5)

	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}

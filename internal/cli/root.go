// Package cli provides the command-line interface for nerdalert.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nerdalert/nerdalert-go/internal/config"
	"github.com/nerdalert/nerdalert-go/internal/knowledge"
	"github.com/nerdalert/nerdalert-go/internal/memory"
	"github.com/nerdalert/nerdalert-go/internal/metrics"
	"github.com/nerdalert/nerdalert-go/internal/rag"
	"github.com/nerdalert/nerdalert-go/internal/search"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config, loaded once per invocation
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nerdalert",
	Short: "Pop-culture fact-checking pipeline",
	Long: `NerdAlert is an accuracy pipeline for pop-culture Q&A: multi-provider
web search with fallback, source-authority scoring, a curated knowledge
base with similarity retrieval, and per-session conversation memory.

Run searches and knowledge lookups directly, or serve the pipeline as
an MCP tool surface for a model-invocation loop.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
	},
}

// cliLogger builds a stderr logger for interactive commands. Quiet by
// default so report output stays clean; --verbose lifts it to debug.
func cliLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// pipeline bundles the wired services for one CLI invocation.
type pipeline struct {
	logger  *slog.Logger
	search  *search.Service
	rag     *rag.Service
	memory  *memory.Manager
	metrics *metrics.Collector
	store   *knowledge.Store
}

// buildPipeline wires providers, stores, and services from config and
// seeds the knowledge base.
func buildPipeline(ctx context.Context) (*pipeline, error) {
	logger := cliLogger()

	vectorizer, err := knowledge.NewVectorizer(cfg)
	if err != nil {
		return nil, fmt.Errorf("init vectorizer: %w", err)
	}
	store := knowledge.NewStore(vectorizer, knowledge.WithRelevanceThreshold(cfg.RelevanceThreshold))
	if err := knowledge.Seed(ctx, store); err != nil {
		return nil, fmt.Errorf("seed knowledge base: %w", err)
	}

	collector := metrics.NewCollector()

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

	return &pipeline{
		logger:  logger,
		search:  search.NewService(controller, logger),
		rag:     rag.NewService(store, cfg.MaxEntryAgeDays, logger),
		memory:  memory.NewManager(limits, memory.WordOverlapMatcher{}, logger, memory.WithMetrics(collector)),
		metrics: collector,
		store:   store,
	}, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(memoryCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}

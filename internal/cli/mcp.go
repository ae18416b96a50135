package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nerdalert/nerdalert-go/internal/config"
	"github.com/nerdalert/nerdalert-go/internal/server"
	"github.com/nerdalert/nerdalert-go/internal/tools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP tool server on stdio",
	Long: `Serve the pipeline as MCP tools (search, verify, rag_lookup,
rag_validate) over stdio for a model-invocation loop.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	// Stdio carries the protocol; logs go to stderr and the log file.
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}

	srv := server.New(Version, logger)
	srv.Setup()

	deps := &tools.Dependencies{
		Search:  p.search,
		RAG:     p.rag,
		Memory:  p.memory,
		Metrics: p.metrics,
		Logger:  logger,
	}
	tools.RegisterAll(srv.MCPServer(), deps)
	logger.Info("tools registered", "count", 5)

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

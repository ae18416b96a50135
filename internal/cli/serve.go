package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nerdalert/nerdalert-go/internal/config"
	"github.com/nerdalert/nerdalert-go/internal/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP inspection server",
	Long: `Run the inspection server: session memory read/delete, health, and
runtime stats. Sessions are only ever created by the pipeline itself.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default $NERDALERT_HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
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

	addr := serveAddr
	if addr == "" {
		addr = cfg.HTTPAddr
	}

	api := httpapi.NewAPI(p.memory, p.metrics, logger)
	if err := api.Serve(ctx, addr); err != nil {
		return fmt.Errorf("inspection server: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

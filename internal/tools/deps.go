// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/nerdalert/nerdalert-go/internal/memory"
	"github.com/nerdalert/nerdalert-go/internal/metrics"
	"github.com/nerdalert/nerdalert-go/internal/rag"
	"github.com/nerdalert/nerdalert-go/internal/search"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Search  *search.Service
	RAG     *rag.Service
	Memory  *memory.Manager
	Metrics *metrics.Collector
	Logger  *slog.Logger
}

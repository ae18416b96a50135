package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nerdalert/nerdalert-go/internal/knowledge"
	"github.com/nerdalert/nerdalert-go/internal/metrics"
	"github.com/nerdalert/nerdalert-go/internal/search"
)

// RAGLookupInput defines the input schema for the rag_lookup tool.
type RAGLookupInput struct {
	Query     string `json:"query" jsonschema:"required,The topic to look up"`
	Category  string `json:"category,omitempty" jsonschema:"Optional category filter (movie, tv_show, comic, trivia, news, character)"`
	Franchise string `json:"franchise,omitempty" jsonschema:"Optional franchise filter (Marvel, DC, Star Wars, ...)"`
}

// NewRAGLookupHandler creates the rag_lookup tool handler. Renders
// stored knowledge hits and recommendations; falls through to a live
// web search when stored knowledge does not suffice.
func NewRAGLookupHandler(deps *Dependencies) mcp.ToolHandlerFor[RAGLookupInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RAGLookupInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide a topic to look up"), nil, nil
		}

		start := time.Now()
		report, err := deps.RAG.EnhancedSearch(ctx, input.Query, knowledge.Category(input.Category), input.Franchise)
		deps.Metrics.RecordTiming(metrics.OpRAGRetrieve, time.Since(start))
		if err != nil {
			deps.Logger.Error("rag lookup failed", "error", err)
			return ErrorResult("Knowledge lookup failed", "Try a plain search instead"), nil, nil
		}

		var b strings.Builder
		if len(report.Results) > 0 {
			fmt.Fprintf(&b, "KNOWLEDGE BASE (%d entries, confidence %s):\n\n", len(report.Results), report.Confidence)
			for _, entry := range report.Results {
				fmt.Fprintf(&b, "TITLE: %s\n", entry.Title)
				fmt.Fprintf(&b, "CONTENT: %s\n", entry.Content)
				fmt.Fprintf(&b, "STATUS: %s | CANON: %s | CONFIDENCE: %s\n\n",
					entry.Status, entry.CanonStatus, entry.Confidence)
			}
		}
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&b, "NOTE: %s\n", rec)
		}

		if report.WebSearchNeeded {
			if !deps.Search.HasConfiguredProvider() {
				b.WriteString("\nWeb search needed but " + keyMissingReport)
				return TextResult(b.String()), nil, nil
			}
			resp := deps.Search.AggregatedSearch(ctx, input.Query, search.DefaultOptions())
			b.WriteString("\nWEB SEARCH:\n")
			if resp.Success {
				b.WriteString(formatResults(resp))
			} else {
				b.WriteString("No results found.")
			}
		}

		deps.Logger.Info("rag lookup completed",
			"query", input.Query, "hits", len(report.Results), "web_search", report.WebSearchNeeded)

		return TextResult(b.String()), nil, nil
	}
}

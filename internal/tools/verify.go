package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nerdalert/nerdalert-go/internal/metrics"
	"github.com/nerdalert/nerdalert-go/internal/search"
)

// VerifyInput defines the input schema for the verify tool.
type VerifyInput struct {
	Query        string `json:"query" jsonschema:"required,The claim or topic to verify"`
	PriorResults string `json:"priorResults,omitempty" jsonschema:"Earlier search output to append the assessment to"`
}

// NewVerifyHandler creates the verify tool handler. It re-searches the
// claim against authoritative sources and appends a confidence
// assessment plus a source-mix tally to any prior results.
func NewVerifyHandler(deps *Dependencies) mcp.ToolHandlerFor[VerifyInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input VerifyInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide a claim to verify"), nil, nil
		}

		// Missing credentials degrade to an explicit report, not an error.
		if !deps.Search.HasConfiguredProvider() {
			return TextResult(keyMissingReport), nil, nil
		}

		start := time.Now()
		resp := deps.Search.EnhancedSearch(ctx, input.Query, search.Options{
			MaxResults:  8,
			IncludeNews: true,
		})
		deps.Metrics.RecordSearch(metrics.OpSearch, time.Since(start), int64(len(resp.Results)), resp.Success)

		var b strings.Builder
		if input.PriorResults != "" {
			b.WriteString(input.PriorResults)
			b.WriteString("\n\n")
		}

		if !resp.Success {
			b.WriteString("VERIFICATION: unable to verify - no sources reachable.")
			if resp.Err != "" {
				fmt.Fprintf(&b, " %s", resp.Err)
			}
			return TextResult(b.String()), nil, nil
		}

		tally := tallySources(resp.Results)
		fmt.Fprintf(&b, "VERIFICATION CONFIDENCE: %s\n", confidenceBand(tally))
		b.WriteString(formatTally(tally))
		fmt.Fprintf(&b, "\nQuality score: %.1f/10 across %d sources.",
			resp.QualityScore, len(resp.Results))

		deps.Logger.Info("verification completed",
			"query", input.Query, "confidence", confidenceBand(tally), "sources", len(resp.Results))

		return TextResult(b.String()), nil, nil
	}
}

package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nerdalert/nerdalert-go/internal/knowledge"
	"github.com/nerdalert/nerdalert-go/internal/metrics"
)

// RAGValidateInput defines the input schema for the rag_validate tool.
type RAGValidateInput struct {
	Topic    string `json:"topic" jsonschema:"required,The topic to validate"`
	Category string `json:"category,omitempty" jsonschema:"Optional category filter"`
}

// NewRAGValidateHandler creates the rag_validate tool handler. Renders
// currency, confidence, conflict, and canonical-info sections for a
// stored topic.
func NewRAGValidateHandler(deps *Dependencies) mcp.ToolHandlerFor[RAGValidateInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input RAGValidateInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Topic == "" {
			return ErrorResult("Topic cannot be empty", "Provide a topic to validate"), nil, nil
		}

		start := time.Now()
		validation := deps.RAG.ValidateInformation(input.Topic, knowledge.Category(input.Category))
		conflicts, err := deps.RAG.CheckConflicts(ctx, input.Topic)
		deps.Metrics.RecordTiming(metrics.OpRAGRetrieve, time.Since(start))
		if err != nil {
			deps.Logger.Error("conflict check failed", "error", err)
			return ErrorResult("Validation failed", "Try again or use a plain search"), nil, nil
		}

		var b strings.Builder
		fmt.Fprintf(&b, "VALIDATION: %s\n", input.Topic)

		if validation.LastUpdated != nil {
			fmt.Fprintf(&b, "Currency: %s (last updated %s)\n",
				currencyLabel(validation.IsCurrent), validation.LastUpdated.Format("2006-01-02"))
		} else {
			b.WriteString("Currency: no stored information\n")
		}
		fmt.Fprintf(&b, "Confidence: %s\n", validation.Confidence)
		if validation.NeedsUpdate {
			b.WriteString("Needs update: yes - verify against live sources before answering.\n")
		}

		if conflicts.HasConflicts {
			fmt.Fprintf(&b, "\nCONFLICTS (%d):\n", len(conflicts.Conflicts))
			for _, c := range conflicts.Conflicts {
				fmt.Fprintf(&b, "- [%s] %s vs %s: %s\n", c.Type, c.Entry1.ID, c.Entry2.ID, c.Description)
			}
		} else {
			b.WriteString("\nNo conflicts in stored knowledge.\n")
		}

		if canonical, ok, err := deps.RAG.CanonicalInfo(ctx, input.Topic, ""); err == nil && ok {
			fmt.Fprintf(&b, "\nCANONICAL: %s - %s (%s)\n", canonical.Title, canonical.Content, canonical.CanonStatus)
		}

		deps.Logger.Info("validation completed",
			"topic", input.Topic, "current", validation.IsCurrent, "conflicts", len(conflicts.Conflicts))

		return TextResult(b.String()), nil, nil
	}
}

func currencyLabel(current bool) string {
	if current {
		return "current"
	}
	return "stale"
}

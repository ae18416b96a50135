package tools

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nerdalert/nerdalert-go/internal/metrics"
	"github.com/nerdalert/nerdalert-go/internal/search"
)

// SearchInput defines the input schema for the search tool.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"required,The search query text"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Max results 1-20, default 8"`
	SessionID  string `json:"sessionId,omitempty" jsonschema:"Conversation session id for memory tracking"`
}

// NewSearchHandler creates the search tool handler.
// Runs the multi-strategy aggregated search pipeline.
func NewSearchHandler(deps *Dependencies) mcp.ToolHandlerFor[SearchInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Query == "" {
			return ErrorResult("Query cannot be empty", "Provide a search query"), nil, nil
		}
		if input.MaxResults > 20 {
			return ErrorResult("maxResults must be 1-20", "Reduce maxResults"), nil, nil
		}

		opts := search.DefaultOptions()
		opts.RequireOfficialSources = false
		if input.MaxResults > 0 {
			opts.MaxResults = input.MaxResults
		}

		start := time.Now()
		resp := deps.Search.AggregatedSearch(ctx, input.Query, opts)
		deps.Metrics.RecordSearch(metrics.OpSearch, time.Since(start), int64(len(resp.Results)), resp.Success)

		if input.SessionID != "" {
			deps.Memory.AddDiscussedTopic(input.SessionID, input.Query)
		}

		if !resp.Success {
			// Terminal search failure is a normal outcome; report it as
			// text so the model can degrade gracefully.
			text := "No results found."
			if resp.Err != "" {
				text += " " + resp.Err
			}
			return TextResult(text), nil, nil
		}

		queryLog := input.Query
		if r := []rune(queryLog); len(r) > 30 {
			queryLog = string(r[:30]) + "..."
		}
		deps.Logger.Info("search completed", "query", queryLog, "results", len(resp.Results))

		return TextResult(formatResults(resp)), nil, nil
	}
}

package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	// Ping tool - test/placeholder
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Test tool - responds with pong or echoes input",
	}, NewPingHandler(deps))

	// Aggregated web search across providers with dedup + authority scoring
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Multi-strategy web search for pop-culture facts, deduplicated and ranked by source authority",
	}, NewSearchHandler(deps))

	// Verification pass over a claim
	mcp.AddTool(server, &mcp.Tool{
		Name:        "verify",
		Description: "Verify a claim against authoritative sources and report a confidence assessment",
	}, NewVerifyHandler(deps))

	// Knowledge-base lookup with web fallback
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rag_lookup",
		Description: "Look up curated knowledge-base entries, falling through to web search when stored knowledge is insufficient",
	}, NewRAGLookupHandler(deps))

	// Stored-knowledge validation
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rag_validate",
		Description: "Validate stored knowledge on a topic: currency, confidence, conflicts, and canonical status",
	}, NewRAGValidateHandler(deps))
}

package tools

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdalert/nerdalert-go/internal/knowledge"
	"github.com/nerdalert/nerdalert-go/internal/memory"
	"github.com/nerdalert/nerdalert-go/internal/metrics"
	"github.com/nerdalert/nerdalert-go/internal/rag"
	"github.com/nerdalert/nerdalert-go/internal/search"
)

// matchAllVectorizer maps every text to the same vector so stored
// entries always match.
type matchAllVectorizer struct{}

func (matchAllVectorizer) Vectorize(context.Context, string) ([]float64, error) {
	return []float64{1, 0, 0}, nil
}

// testDeps wires handlers against an empty provider chain (no
// credentials) and an in-memory knowledge store.
func testDeps(t *testing.T) (*Dependencies, *knowledge.Store) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	controller := search.NewController(nil, search.ControllerConfig{MaxRetries: 1}, logger)
	store := knowledge.NewStore(matchAllVectorizer{})
	return &Dependencies{
		Search:  search.NewService(controller, logger),
		RAG:     rag.NewService(store, 30, logger),
		Memory:  memory.NewManager(memory.DefaultLimits(), nil, logger),
		Metrics: metrics.NewCollector(),
		Logger:  logger,
	}, store
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestSearchHandlerValidation(t *testing.T) {
	deps, _ := testDeps(t)
	handler := NewSearchHandler(deps)

	res, _, err := handler(context.Background(), nil, SearchInput{})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Query cannot be empty")

	res, _, err = handler(context.Background(), nil, SearchInput{Query: "q", MaxResults: 50})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSearchHandlerTotalFailureIsText(t *testing.T) {
	deps, _ := testDeps(t)
	handler := NewSearchHandler(deps)

	res, _, err := handler(context.Background(), nil, SearchInput{Query: "Deadpool"})
	require.NoError(t, err)
	assert.False(t, res.IsError, "terminal search failure is a normal outcome")
	assert.Contains(t, resultText(t, res), "No results found")
}

func TestSearchHandlerRecordsSessionTopic(t *testing.T) {
	deps, _ := testDeps(t)
	handler := NewSearchHandler(deps)

	_, _, err := handler(context.Background(), nil, SearchInput{Query: "Deadpool", SessionID: "s1"})
	require.NoError(t, err)

	mem, ok := deps.Memory.Get("s1")
	require.True(t, ok)
	assert.Contains(t, mem.DiscussedTopics, "deadpool")
}

func TestSearchHandlerLogsMultiByteQueryIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"organic":[
			{"title":"Pokémon","link":"https://imdb.com/p","snippet":"Film","position":1}
		]}`))
	}))
	defer srv.Close()

	provider := search.NewSerperProvider("key", true, srv.Client())
	provider.SetBaseURL(srv.URL)
	controller := search.NewController([]search.Provider{provider},
		search.ControllerConfig{MaxRetries: 1}, slog.New(slog.DiscardHandler))

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	deps := &Dependencies{
		Search:  search.NewService(controller, logger),
		Memory:  memory.NewManager(memory.DefaultLimits(), nil, logger),
		Metrics: metrics.NewCollector(),
		Logger:  logger,
	}
	handler := NewSearchHandler(deps)

	// Long enough to truncate, multi-byte throughout; truncation must
	// never split a rune.
	query := strings.Repeat("é", 40)
	res, _, err := handler(context.Background(), nil, SearchInput{Query: query})
	require.NoError(t, err)
	assert.False(t, res.IsError)

	assert.Contains(t, logBuf.String(), strings.Repeat("é", 30)+"...")
	assert.True(t, utf8.ValidString(logBuf.String()))
}

func TestVerifyHandlerWithoutCredentials(t *testing.T) {
	deps, _ := testDeps(t)
	handler := NewVerifyHandler(deps)

	res, _, err := handler(context.Background(), nil, VerifyInput{Query: "Hugh Jackman plays Wolverine"})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, keyMissingReport, resultText(t, res))
}

func TestRAGLookupHandlerRendersHits(t *testing.T) {
	deps, store := testDeps(t)
	require.NoError(t, store.AddEntry(context.Background(), knowledge.Entry{
		ID:          "dw-2024",
		Title:       "Deadpool & Wolverine",
		Content:     "Released July 26, 2024.",
		Category:    knowledge.CategoryMovie,
		Franchise:   "Marvel",
		Status:      knowledge.StatusReleased,
		LastUpdated: time.Now(),
		Confidence:  knowledge.ConfidenceHigh,
		CanonStatus: knowledge.CanonStatusCanon,
	}))
	handler := NewRAGLookupHandler(deps)

	res, _, err := handler(context.Background(), nil, RAGLookupInput{Query: "Deadpool & Wolverine"})
	require.NoError(t, err)
	got := resultText(t, res)
	assert.Contains(t, got, "KNOWLEDGE BASE (1 entries, confidence HIGH)")
	assert.Contains(t, got, "TITLE: Deadpool & Wolverine")
	assert.NotContains(t, got, "WEB SEARCH", "fresh high-confidence hit needs no live search")
}

func TestRAGLookupHandlerFallsThroughWithoutKnowledge(t *testing.T) {
	deps, _ := testDeps(t)
	handler := NewRAGLookupHandler(deps)

	res, _, err := handler(context.Background(), nil, RAGLookupInput{Query: "Unknown Topic"})
	require.NoError(t, err)
	got := resultText(t, res)
	assert.Contains(t, got, "No information found")
	assert.Contains(t, got, keyMissingReport)
}

func TestRAGValidateHandler(t *testing.T) {
	ctx := context.Background()
	deps, store := testDeps(t)

	first := knowledge.Entry{
		ID: "movie-x-a", Title: "Movie X", Content: "Movie X details.",
		Category: knowledge.CategoryMovie, ReleaseDate: "2024-07-26",
		Status: knowledge.StatusReleased, LastUpdated: time.Now(),
		Confidence: knowledge.ConfidenceHigh, CanonStatus: knowledge.CanonStatusCanon,
	}
	second := first
	second.ID = "movie-x-b"
	second.ReleaseDate = "2024-08-01"
	second.Status = knowledge.StatusInProduction
	require.NoError(t, store.AddEntry(ctx, first))
	require.NoError(t, store.AddEntry(ctx, second))

	handler := NewRAGValidateHandler(deps)
	res, _, err := handler(ctx, nil, RAGValidateInput{Topic: "Movie X"})
	require.NoError(t, err)
	got := resultText(t, res)
	assert.Contains(t, got, "VALIDATION: Movie X")
	assert.Contains(t, got, "Currency: current")
	assert.Contains(t, got, "CONFLICTS (2)")
	assert.Contains(t, got, "CANONICAL:")
}

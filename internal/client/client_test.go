package client

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdalert/nerdalert-go/internal/httpapi"
	"github.com/nerdalert/nerdalert-go/internal/memory"
	"github.com/nerdalert/nerdalert-go/internal/metrics"
)

// testServer runs the real inspection API behind httptest so the client
// is exercised against the actual route table.
func testServer(t *testing.T) (*Client, *memory.Manager) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	mem := memory.NewManager(memory.DefaultLimits(), nil, logger)
	api := httpapi.NewAPI(mem, metrics.NewCollector(), logger)

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return New(srv.URL), mem
}

func TestHealth(t *testing.T) {
	c, _ := testServer(t)
	assert.NoError(t, c.Health(context.Background()))
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mem := testServer(t)

	_, err := c.Memory(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	mem.AddDiscussedTopic("s1", "Deadpool")
	got, err := c.Memory(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.SessionID)
	assert.Equal(t, []string{"deadpool"}, got.DiscussedTopics)

	require.NoError(t, c.ClearMemory(ctx, "s1"))
	_, err = c.Memory(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Clearing again still succeeds.
	assert.NoError(t, c.ClearMemory(ctx, "s1"))
}

func TestStats(t *testing.T) {
	c, _ := testServer(t)

	snap, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snap.UptimeSeconds, 0.0)
}

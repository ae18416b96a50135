package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerdalert/nerdalert-go/internal/memory"
	"github.com/nerdalert/nerdalert-go/internal/metrics"
)

func testAPI(t *testing.T) (*API, *memory.Manager) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	mem := memory.NewManager(memory.DefaultLimits(), nil, logger)
	return NewAPI(mem, metrics.NewCollector(), logger), mem
}

func doRequest(t *testing.T, api *API, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	api, _ := testAPI(t)

	rec := doRequest(t, api, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGetMemory(t *testing.T) {
	api, mem := testAPI(t)

	t.Run("unknown session is 404", func(t *testing.T) {
		rec := doRequest(t, api, http.MethodGet, "/memory/missing")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Session not found", body["error"])
	})

	t.Run("known session returns snapshot", func(t *testing.T) {
		mem.AddDiscussedTopic("s1", "Deadpool")
		mem.AddRecentMessage("s1", "Deadpool released in 2024.")
		mem.AddCorrection("s1", memory.Correction{
			OriginalClaim: "Actor A plays Hero",
			CorrectedInfo: "Actor B plays Hero",
		})

		rec := doRequest(t, api, http.MethodGet, "/memory/s1")
		require.Equal(t, http.StatusOK, rec.Code)

		var body memory.Memory
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "s1", body.SessionID)
		assert.Equal(t, []string{"deadpool"}, body.DiscussedTopics)
		assert.Len(t, body.RecentMessages, 1)
		require.Len(t, body.Corrections, 1)
		assert.Equal(t, "Actor B plays Hero", body.Corrections[0].CorrectedInfo)
		assert.False(t, body.LastUpdate.IsZero())
	})
}

func TestDeleteMemoryIsIdempotent(t *testing.T) {
	api, mem := testAPI(t)
	mem.AddDiscussedTopic("s1", "topic")

	for i := 0; i < 2; i++ {
		rec := doRequest(t, api, http.MethodDelete, "/memory/s1")
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Session memory cleared", body["message"])
	}

	_, ok := mem.Get("s1")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	api, _ := testAPI(t)

	rec := doRequest(t, api, http.MethodGet, "/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "uptimeSeconds")
}

func TestSessionsCannotBeCreatedOverHTTP(t *testing.T) {
	api, _ := testAPI(t)

	rec := doRequest(t, api, http.MethodPost, "/memory/s1")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

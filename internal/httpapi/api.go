// Package httpapi exposes the inspection surface: session memory
// read/delete, health, and runtime stats.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/nerdalert/nerdalert-go/internal/memory"
	"github.com/nerdalert/nerdalert-go/internal/metrics"
)

// API serves the inspection endpoints over plain HTTP.
type API struct {
	memory  *memory.Manager
	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewAPI creates the inspection API over the given stores.
func NewAPI(mem *memory.Manager, collector *metrics.Collector, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{memory: mem, metrics: collector, logger: logger}
}

// Handler builds the route table. Session endpoints are read/delete
// only; sessions are never created over HTTP.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /stats", a.handleStats)
	mux.HandleFunc("GET /memory/{sessionId}", a.handleGetMemory)
	mux.HandleFunc("DELETE /memory/{sessionId}", a.handleDeleteMemory)
	return RequestLogger(a.logger)(mux)
}

// Serve runs the API on addr until the context is cancelled.
func (a *API) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("inspection server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.metrics.Snapshot())
}

func (a *API) handleGetMemory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	mem, ok := a.memory.Get(sessionID)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Session not found"})
		return
	}
	writeJSON(w, http.StatusOK, mem)
}

// handleDeleteMemory is idempotent: clearing an absent session still
// acknowledges.
func (a *API) handleDeleteMemory(w http.ResponseWriter, r *http.Request) {
	a.memory.Clear(r.PathValue("sessionId"))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Session memory cleared"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

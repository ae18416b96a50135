// Package client provides a REST client for the NerdAlert inspection
// server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nerdalert/nerdalert-go/internal/memory"
	"github.com/nerdalert/nerdalert-go/internal/metrics"
)

// ErrNotFound is returned when the server has no memory for a session.
var ErrNotFound = fmt.Errorf("session not found")

// Client talks to the inspection server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an inspection client.
// If baseURL is empty, uses NERDALERT_SERVER_URL env var or defaults to
// localhost:8080.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("NERDALERT_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	timeout := 10 * time.Second
	if t := os.Getenv("NERDALERT_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Health reports whether the server responds on /health.
func (c *Client) Health(ctx context.Context) error {
	var out map[string]any
	return c.get(ctx, "/health", &out)
}

// Memory fetches one session's memory snapshot.
// Returns ErrNotFound when no memory exists for the id.
func (c *Client) Memory(ctx context.Context, sessionID string) (memory.Memory, error) {
	var out memory.Memory
	err := c.get(ctx, "/memory/"+sessionID, &out)
	return out, err
}

// ClearMemory deletes one session's memory. Idempotent server-side.
func (c *Client) ClearMemory(ctx context.Context, sessionID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/memory/"+sessionID, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error: %s - %s", resp.Status, string(body))
	}
	return nil
}

// Stats fetches the runtime metrics snapshot.
func (c *Client) Stats(ctx context.Context) (metrics.Snapshot, error) {
	var out metrics.Snapshot
	err := c.get(ctx, "/stats", &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server error: %s - %s", resp.Status, string(body))
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

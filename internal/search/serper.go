package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const defaultSerperURL = "https://google.serper.dev/search"

// SerperProvider queries the Serper (Google) search API.
type SerperProvider struct {
	apiKey     string
	configured bool
	baseURL    string
	httpClient *http.Client
}

// NewSerperProvider creates a Serper provider.
func NewSerperProvider(apiKey string, configured bool, httpClient *http.Client) *SerperProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SerperProvider{
		apiKey:     apiKey,
		configured: configured,
		baseURL:    defaultSerperURL,
		httpClient: httpClient,
	}
}

func (p *SerperProvider) Name() string     { return "serper" }
func (p *SerperProvider) Configured() bool { return p.configured }

// SetBaseURL overrides the API endpoint (tests).
func (p *SerperProvider) SetBaseURL(u string) { p.baseURL = u }

type serperRequest struct {
	Q           string `json:"q"`
	Num         int    `json:"num"`
	GL          string `json:"gl"`
	HL          string `json:"hl"`
	Autocorrect bool   `json:"autocorrect"`
	Safe        string `json:"safe"`
}

type serperResponse struct {
	Organic []serperResult `json:"organic"`
}

// Search performs one Serper query.
func (p *SerperProvider) Search(ctx context.Context, query string) ([]RawResult, error) {
	payload, err := json.Marshal(serperRequest{
		Q:           query,
		Num:         10,
		GL:          "us",
		HL:          "en",
		Autocorrect: true,
		Safe:        "active",
	})
	if err != nil {
		return nil, fmt.Errorf("encode serper request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build serper request: %w", err)
	}
	req.Header.Set("X-API-KEY", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("serper status %d", resp.StatusCode)
	}

	var body serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode serper response: %w", err)
	}

	raws := make([]RawResult, 0, len(body.Organic))
	for i := range body.Organic {
		raws = append(raws, RawResult{Provider: p.Name(), Serper: &body.Organic[i]})
	}
	return raws, nil
}

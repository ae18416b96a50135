package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const defaultBraveURL = "https://api.search.brave.com/res/v1/web/search"

// BraveProvider queries the Brave web search API.
type BraveProvider struct {
	apiKey     string
	configured bool
	baseURL    string
	httpClient *http.Client
}

// NewBraveProvider creates a Brave provider. The caller decides whether
// the key is usable; a provider created with configured=false is skipped.
func NewBraveProvider(apiKey string, configured bool, httpClient *http.Client) *BraveProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BraveProvider{
		apiKey:     apiKey,
		configured: configured,
		baseURL:    defaultBraveURL,
		httpClient: httpClient,
	}
}

func (p *BraveProvider) Name() string     { return "brave" }
func (p *BraveProvider) Configured() bool { return p.configured }

// SetBaseURL overrides the API endpoint (tests).
func (p *BraveProvider) SetBaseURL(u string) { p.baseURL = u }

type braveResponse struct {
	Web struct {
		Results []braveResult `json:"results"`
	} `json:"web"`
}

// Search performs one Brave query.
func (p *BraveProvider) Search(ctx context.Context, query string) ([]RawResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("count", "10")
	params.Set("offset", "0")
	params.Set("safesearch", "moderate")
	params.Set("search_lang", "en")
	params.Set("country", "US")
	params.Set("extra_snippets", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build brave request: %w", err)
	}
	// Gzip negotiation is left to the transport; setting Accept-Encoding
	// ourselves would suppress its transparent decompression.
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("brave status %d", resp.StatusCode)
	}

	var body braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode brave response: %w", err)
	}

	raws := make([]RawResult, 0, len(body.Web.Results))
	for i := range body.Web.Results {
		raws = append(raws, RawResult{Provider: p.Name(), Brave: &body.Web.Results[i]})
	}
	return raws, nil
}

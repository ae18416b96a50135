// Package search implements the multi-provider web search pipeline:
// provider fallback, result normalization, deduplication, authority
// scoring, and quality aggregation.
package search

// Result is the canonical search result record all providers normalize to.
type Result struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Source   string `json:"source"`
	Position int    `json:"position"`
	Score    int    `json:"score,omitempty"`
}

// Response is the outcome of an enhanced search: scored, deduplicated
// results plus aggregate quality metrics.
type Response struct {
	Results         []Result `json:"results"`
	Provider        string   `json:"provider"`
	Success         bool     `json:"success"`
	QualityScore    float64  `json:"qualityScore"`
	SourceDiversity []string `json:"sourceDiversity"`
	Err             string   `json:"error,omitempty"`
}

// Options configures an enhanced search.
type Options struct {
	MaxResults             int
	RequireOfficialSources bool
	IncludeNews            bool
	IncludeWikis           bool
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		MaxResults:   8,
		IncludeNews:  true,
		IncludeWikis: true,
	}
}

// RawResult is one provider-specific result awaiting normalization.
// Exactly one of the payload fields is set, tagged by Provider.
type RawResult struct {
	Provider string
	Brave    *braveResult
	Serper   *serperResult
}

// braveResult mirrors the fields of a Brave web result we consume.
type braveResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Position    int    `json:"position"`
}

// serperResult mirrors the fields of a Serper organic result we consume.
type serperResult struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}

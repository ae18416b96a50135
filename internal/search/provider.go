package search

import "context"

// Provider abstracts one external search backend.
type Provider interface {
	// Name returns the provider identifier ("brave", "serper").
	Name() string

	// Configured reports whether the provider has a usable credential.
	// Unconfigured providers are skipped by the fallback controller.
	Configured() bool

	// Search performs one query and returns raw, provider-shaped results.
	// An empty slice with nil error is a valid outcome.
	Search(ctx context.Context, query string) ([]RawResult, error)
}

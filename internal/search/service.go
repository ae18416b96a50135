package search

import (
	"context"
	"fmt"
	"log/slog"
)

// Service combines the fallback controller with scoring, deduplication,
// and aggregation into the enhanced-search surface tools consume.
type Service struct {
	controller *Controller
	logger     *slog.Logger
}

// NewService creates an enhanced search service.
func NewService(controller *Controller, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{controller: controller, logger: logger}
}

// Search runs the raw fallback chain without scoring. Exposed for
// callers that want the plain normalized results.
func (s *Service) Search(ctx context.Context, query string) Outcome {
	return s.controller.Search(ctx, query)
}

// HasConfiguredProvider reports whether any search provider carries a
// usable credential.
func (s *Service) HasConfiguredProvider() bool {
	return s.controller.HasConfiguredProvider()
}

// EnhancedSearch runs the full pipeline: fallback search, dedup, authority
// scoring, diversity/quality aggregation, then post-score filters and
// truncation. A failed search yields an empty, well-formed Response.
func (s *Service) EnhancedSearch(ctx context.Context, query string, opts Options) Response {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 8
	}

	out := s.controller.Search(ctx, query)
	if !out.Success {
		return Response{
			Results:         []Result{},
			Provider:        out.Provider,
			Success:         false,
			SourceDiversity: []string{},
			Err:             out.Err,
		}
	}

	scored := Prioritize(RemoveDuplicates(out.Results))
	diversity := SourceDiversity(scored)
	quality := QualityScore(scored, diversity)

	filtered := make([]Result, 0, len(scored))
	for _, r := range scored {
		if opts.RequireOfficialSources && !IsOfficialSource(r.Link) {
			continue
		}
		if !opts.IncludeNews && IsNewsSource(r.Link) {
			continue
		}
		if !opts.IncludeWikis && IsWikiSource(r.Link) {
			continue
		}
		filtered = append(filtered, r)
		if len(filtered) == opts.MaxResults {
			break
		}
	}

	s.logger.Debug("enhanced search complete",
		"query", query, "provider", out.Provider,
		"results", len(filtered), "quality", quality, "domains", len(diversity))

	return Response{
		Results:         filtered,
		Provider:        out.Provider,
		Success:         true,
		QualityScore:    quality,
		SourceDiversity: diversity,
	}
}

// AggregatedSearch runs multiple query strategies and merges the scored
// results into one deduplicated, prioritized set. Partial strategy
// failures are tolerated; the response carries whatever succeeded.
func (s *Service) AggregatedSearch(ctx context.Context, query string, opts Options) Response {
	strategies := []string{
		query,
		fmt.Sprintf("%s latest news", query),
		fmt.Sprintf("%s site:fandom.com OR site:wikipedia.org", query),
	}

	var merged []Result
	provider := "none"
	var lastErr string
	for _, q := range strategies {
		out := s.controller.Search(ctx, q)
		if !out.Success {
			lastErr = out.Err
			continue
		}
		provider = out.Provider
		merged = append(merged, out.Results...)
	}

	if len(merged) == 0 {
		return Response{
			Results:         []Result{},
			Provider:        provider,
			Success:         false,
			SourceDiversity: []string{},
			Err:             lastErr,
		}
	}

	if opts.MaxResults <= 0 {
		opts.MaxResults = 8
	}

	scored := Prioritize(RemoveDuplicates(merged))
	diversity := SourceDiversity(scored)
	quality := QualityScore(scored, diversity)

	if len(scored) > opts.MaxResults {
		scored = scored[:opts.MaxResults]
	}

	return Response{
		Results:         scored,
		Provider:        provider,
		Success:         true,
		QualityScore:    quality,
		SourceDiversity: diversity,
	}
}

// SearchMovieInfo targets official movie databases for cast and release
// details.
func (s *Service) SearchMovieInfo(ctx context.Context, movieTitle string) Response {
	query := fmt.Sprintf("%s movie cast release date site:imdb.com OR site:marvel.com OR site:dc.com", movieTitle)
	return s.EnhancedSearch(ctx, query, Options{
		MaxResults:             6,
		RequireOfficialSources: true,
		IncludeNews:            true,
	})
}

// SearchActorInfo targets filmography sources for an actor.
func (s *Service) SearchActorInfo(ctx context.Context, actorName string) Response {
	query := fmt.Sprintf("%s filmography movies site:imdb.com OR site:marvel.com OR site:dc.com", actorName)
	return s.EnhancedSearch(ctx, query, Options{
		MaxResults:             6,
		RequireOfficialSources: true,
		IncludeNews:            true,
	})
}

// SearchLatestNews targets entertainment press for recent coverage.
func (s *Service) SearchLatestNews(ctx context.Context, topic string) Response {
	query := fmt.Sprintf("%s latest news site:variety.com OR site:hollywoodreporter.com OR site:deadline.com", topic)
	return s.EnhancedSearch(ctx, query, Options{
		MaxResults:   8,
		IncludeNews:  true,
		IncludeWikis: false,
	})
}

// SearchWikiInfo targets fan wikis, optionally scoped to a franchise.
func (s *Service) SearchWikiInfo(ctx context.Context, topic, franchise string) Response {
	query := fmt.Sprintf("%s site:fandom.com OR site:wikipedia.org", topic)
	if franchise != "" {
		query = fmt.Sprintf("%s %s site:fandom.com OR site:wikipedia.org", topic, franchise)
	}
	return s.EnhancedSearch(ctx, query, Options{
		MaxResults:   6,
		IncludeWikis: true,
	})
}

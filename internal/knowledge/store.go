package knowledge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	defaultRelevanceThreshold = 0.3
	defaultRetrieveLimit      = 5

	// DefaultMaxAgeDays is the staleness window for IsCurrent.
	DefaultMaxAgeDays = 30
)

// Store owns all knowledge entries. Callers receive copies, never
// references into the store.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]Entry
	vectors    map[string][]float64
	vectorizer Vectorizer
	threshold  float64

	// now is swapped out in tests.
	now func() time.Time
}

// StoreOption tunes a Store at construction.
type StoreOption func(*Store)

// WithRelevanceThreshold overrides the retrieval similarity cutoff.
func WithRelevanceThreshold(threshold float64) StoreOption {
	return func(s *Store) { s.threshold = threshold }
}

// WithClock overrides the store's time source (tests).
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty knowledge store.
func NewStore(vectorizer Vectorizer, opts ...StoreOption) *Store {
	if vectorizer == nil {
		vectorizer = WordLengthVectorizer{}
	}
	s := &Store{
		entries:    make(map[string]Entry),
		vectors:    make(map[string][]float64),
		vectorizer: vectorizer,
		threshold:  defaultRelevanceThreshold,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddEntry upserts an entry by ID and recomputes its similarity vector
// over title + content.
func (s *Store) AddEntry(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		return fmt.Errorf("entry ID is required")
	}

	vector, err := s.vectorizer.Vectorize(ctx, entry.Title+" "+entry.Content)
	if err != nil {
		return fmt.Errorf("vectorize entry %s: %w", entry.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry.clone()
	s.vectors[entry.ID] = vector
	return nil
}

// Retrieve scores every stored entry against the query vector, keeps
// those above the relevance threshold, applies category/franchise
// filters, and returns up to Limit entries ordered by similarity.
func (s *Store) Retrieve(ctx context.Context, q Query) ([]Entry, error) {
	queryVector, err := s.vectorizer.Vectorize(ctx, q.Query)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultRetrieveLimit
	}

	type scored struct {
		entry Entry
		score float64
	}

	s.mu.RLock()
	matches := make([]scored, 0, len(s.entries))
	for id, entry := range s.entries {
		vector, ok := s.vectors[id]
		if !ok {
			continue
		}
		score := Cosine(queryVector, vector)
		if score <= s.threshold {
			continue
		}
		if q.Category != "" && entry.Category != q.Category {
			continue
		}
		if q.Franchise != "" && entry.Franchise != q.Franchise {
			continue
		}
		if q.DateRange != nil && !inDateRange(entry.ReleaseDate, q.DateRange) {
			continue
		}
		matches = append(matches, scored{entry: entry.clone(), score: score})
	}
	s.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Entry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out, nil
}

// CurrentInfo returns the most recently updated entry whose title
// contains topic (case-insensitive), optionally filtered by category.
func (s *Store) CurrentInfo(topic string, category Category) (Entry, bool) {
	needle := strings.ToLower(topic)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var best Entry
	found := false
	for _, entry := range s.entries {
		if !strings.Contains(strings.ToLower(entry.Title), needle) {
			continue
		}
		if category != "" && entry.Category != category {
			continue
		}
		if !found || entry.LastUpdated.After(best.LastUpdated) {
			best = entry
			found = true
		}
	}
	if !found {
		return Entry{}, false
	}
	return best.clone(), true
}

// IsCurrent reports whether the entry's LastUpdated is within
// maxAgeDays of now.
func (s *Store) IsCurrent(entry Entry, maxAgeDays int) bool {
	if maxAgeDays <= 0 {
		maxAgeDays = DefaultMaxAgeDays
	}
	age := s.now().Sub(entry.LastUpdated)
	return age <= time.Duration(maxAgeDays)*24*time.Hour
}

// UpdateEntry merges a patch into an existing entry and replaces it,
// stamping a fresh LastUpdated. Unknown IDs are a no-op.
func (s *Store) UpdateEntry(ctx context.Context, id string, patch EntryPatch) error {
	s.mu.RLock()
	existing, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	updated := existing.clone()
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Content != nil {
		updated.Content = *patch.Content
	}
	if patch.Category != nil {
		updated.Category = *patch.Category
	}
	if patch.Franchise != nil {
		updated.Franchise = *patch.Franchise
	}
	if patch.ReleaseDate != nil {
		updated.ReleaseDate = *patch.ReleaseDate
	}
	if patch.Status != nil {
		updated.Status = *patch.Status
	}
	if patch.Verified != nil {
		updated.Verified = *patch.Verified
	}
	if patch.Sources != nil {
		updated.Sources = append([]string(nil), patch.Sources...)
	}
	if patch.Confidence != nil {
		updated.Confidence = *patch.Confidence
	}
	if patch.CanonStatus != nil {
		updated.CanonStatus = *patch.CanonStatus
	}
	if patch.Tags != nil {
		updated.Tags = append([]string(nil), patch.Tags...)
	}
	updated.LastUpdated = s.now()

	return s.AddEntry(ctx, updated)
}

// Entry returns a copy of the entry with the given ID.
func (s *Store) Entry(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return Entry{}, false
	}
	return entry.clone(), true
}

// Len reports the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// TriviaByType returns entries with the given trivia type, optionally
// filtered by franchise.
func (s *Store) TriviaByType(triviaType, franchise string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, entry := range s.entries {
		if entry.TriviaType != triviaType {
			continue
		}
		if franchise != "" && entry.Franchise != franchise {
			continue
		}
		out = append(out, entry.clone())
	}
	sortByID(out)
	return out
}

// VerifiedTrivia returns verified trivia entries at the given
// confidence level.
func (s *Store) VerifiedTrivia(confidence Confidence) []Entry {
	if confidence == "" {
		confidence = ConfidenceHigh
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, entry := range s.entries {
		if entry.Category != CategoryTrivia || entry.Confidence != confidence || !entry.Verified {
			continue
		}
		out = append(out, entry.clone())
	}
	sortByID(out)
	return out
}

// CanonInfo returns the best canon_info entry for a topic within a
// franchise, ranked by confidence plus verification score.
func (s *Store) CanonInfo(topic, franchise string) (Entry, bool) {
	needle := strings.ToLower(topic)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var best Entry
	bestRank := -1
	for _, entry := range s.entries {
		if entry.Category != CategoryCanonInfo || entry.Franchise != franchise {
			continue
		}
		if !strings.Contains(strings.ToLower(entry.Title), needle) &&
			!strings.Contains(strings.ToLower(entry.Content), needle) {
			continue
		}
		rank := entry.VerificationScore + confidenceRank(entry.Confidence)
		if rank > bestRank {
			best = entry
			bestRank = rank
		}
	}
	if bestRank < 0 {
		return Entry{}, false
	}
	return best.clone(), true
}

func confidenceRank(c Confidence) int {
	switch c {
	case ConfidenceHigh:
		return 100
	case ConfidenceMedium:
		return 50
	default:
		return 0
	}
}

func inDateRange(releaseDate string, dr *DateRange) bool {
	if releaseDate == "" {
		return false
	}
	if dr.Start != "" && releaseDate < dr.Start {
		return false
	}
	if dr.End != "" && releaseDate > dr.End {
		return false
	}
	return true
}

func sortByID(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
}

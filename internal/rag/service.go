// Package rag decides, per query, whether stored knowledge suffices or
// a live web search is required, and reports confidence and conflicts.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nerdalert/nerdalert-go/internal/knowledge"
)

// timeSensitiveKeywords force a web search regardless of stored results.
var timeSensitiveKeywords = []string{"latest", "new", "upcoming", "recent", "current"}

const conflictScanLimit = 10

// SearchReport is the outcome of an enhanced knowledge lookup.
type SearchReport struct {
	Results         []knowledge.Entry    `json:"ragResults"`
	WebSearchNeeded bool                 `json:"webSearchNeeded"`
	Confidence      knowledge.Confidence `json:"confidence"`
	Recommendations []string             `json:"recommendations"`
}

// Validation reports whether stored information on a topic is current.
type Validation struct {
	IsCurrent   bool                 `json:"isCurrent"`
	LastUpdated *time.Time           `json:"lastUpdated"`
	Confidence  knowledge.Confidence `json:"confidence"`
	NeedsUpdate bool                 `json:"needsUpdate"`
}

// ConflictType classifies what two entries disagree about.
type ConflictType string

// Conflict types.
const (
	ConflictDate   ConflictType = "date"
	ConflictStatus ConflictType = "status"
)

// Conflict is one disagreeing pair of entries.
type Conflict struct {
	Entry1      knowledge.Entry `json:"entry1"`
	Entry2      knowledge.Entry `json:"entry2"`
	Type        ConflictType    `json:"conflictType"`
	Description string          `json:"description"`
}

// ConflictReport lists every disagreeing pair in the retrieved set.
type ConflictReport struct {
	HasConflicts bool       `json:"hasConflicts"`
	Conflicts    []Conflict `json:"conflicts"`
}

// Service orchestrates retrieval over the knowledge store.
type Service struct {
	store      *knowledge.Store
	maxAgeDays int
	logger     *slog.Logger
}

// NewService creates a retrieval orchestrator. maxAgeDays bounds how old
// stored information may be before a web search is recommended.
func NewService(store *knowledge.Store, maxAgeDays int, logger *slog.Logger) *Service {
	if maxAgeDays <= 0 {
		maxAgeDays = knowledge.DefaultMaxAgeDays
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, maxAgeDays: maxAgeDays, logger: logger}
}

// EnhancedSearch retrieves stored knowledge and decides whether a live
// web search is still needed.
func (s *Service) EnhancedSearch(ctx context.Context, query string, category knowledge.Category, franchise string) (SearchReport, error) {
	results, err := s.store.Retrieve(ctx, knowledge.Query{
		Query:     query,
		Category:  category,
		Franchise: franchise,
		Limit:     5,
	})
	if err != nil {
		return SearchReport{}, fmt.Errorf("retrieve: %w", err)
	}

	report := SearchReport{
		Results:         results,
		WebSearchNeeded: s.shouldUseWebSearch(results, query),
		Confidence:      overallConfidence(results),
		Recommendations: s.recommendations(results),
	}

	s.logger.Debug("rag search",
		"query", query, "results", len(results),
		"web_search_needed", report.WebSearchNeeded, "confidence", report.Confidence)
	return report, nil
}

// ValidateInformation checks whether the stored entry for a topic is
// current. An absent topic validates as stale and low-confidence.
func (s *Service) ValidateInformation(topic string, category knowledge.Category) Validation {
	entry, ok := s.store.CurrentInfo(topic, category)
	if !ok {
		return Validation{
			IsCurrent:   false,
			LastUpdated: nil,
			Confidence:  knowledge.ConfidenceLow,
			NeedsUpdate: true,
		}
	}

	isCurrent := s.store.IsCurrent(entry, s.maxAgeDays)
	lastUpdated := entry.LastUpdated
	return Validation{
		IsCurrent:   isCurrent,
		LastUpdated: &lastUpdated,
		Confidence:  entry.Confidence,
		NeedsUpdate: !isCurrent || entry.Confidence == knowledge.ConfidenceLow,
	}
}

// CheckConflicts pairwise-compares retrieved entries for differing
// release dates or statuses. Every differing pair is reported.
func (s *Service) CheckConflicts(ctx context.Context, topic string) (ConflictReport, error) {
	entries, err := s.store.Retrieve(ctx, knowledge.Query{Query: topic, Limit: conflictScanLimit})
	if err != nil {
		return ConflictReport{}, fmt.Errorf("retrieve: %w", err)
	}

	var conflicts []Conflict
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]

			if a.ReleaseDate != "" && b.ReleaseDate != "" && a.ReleaseDate != b.ReleaseDate {
				conflicts = append(conflicts, Conflict{
					Entry1: a, Entry2: b, Type: ConflictDate,
					Description: fmt.Sprintf("Release date conflict: %s vs %s", a.ReleaseDate, b.ReleaseDate),
				})
			}
			if a.Status != b.Status {
				conflicts = append(conflicts, Conflict{
					Entry1: a, Entry2: b, Type: ConflictStatus,
					Description: fmt.Sprintf("Status conflict: %s vs %s", a.Status, b.Status),
				})
			}
		}
	}

	return ConflictReport{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}, nil
}

// CanonicalInfo returns the top retrieved entry for a topic when it is
// canon.
func (s *Service) CanonicalInfo(ctx context.Context, topic, franchise string) (knowledge.Entry, bool, error) {
	entries, err := s.store.Retrieve(ctx, knowledge.Query{
		Query:     topic,
		Franchise: franchise,
		Limit:     1,
	})
	if err != nil {
		return knowledge.Entry{}, false, fmt.Errorf("retrieve: %w", err)
	}
	for _, entry := range entries {
		if entry.CanonStatus == knowledge.CanonStatusCanon {
			return entry, true, nil
		}
	}
	return knowledge.Entry{}, false, nil
}

// UpdateKnowledge upserts an entry into the backing store.
func (s *Service) UpdateKnowledge(ctx context.Context, entry knowledge.Entry) error {
	return s.store.AddEntry(ctx, entry)
}

func (s *Service) shouldUseWebSearch(results []knowledge.Entry, query string) bool {
	if len(results) == 0 {
		return true
	}

	allStale := true
	for _, entry := range results {
		if s.store.IsCurrent(entry, s.maxAgeDays) {
			allStale = false
			break
		}
	}
	if allStale {
		return true
	}

	lowered := strings.ToLower(query)
	for _, keyword := range timeSensitiveKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}

	for _, entry := range results {
		if entry.Confidence != knowledge.ConfidenceLow {
			return false
		}
	}
	return true
}

func overallConfidence(results []knowledge.Entry) knowledge.Confidence {
	if len(results) == 0 {
		return knowledge.ConfidenceLow
	}
	hasMedium := false
	for _, entry := range results {
		switch entry.Confidence {
		case knowledge.ConfidenceHigh:
			return knowledge.ConfidenceHigh
		case knowledge.ConfidenceMedium:
			hasMedium = true
		}
	}
	if hasMedium {
		return knowledge.ConfidenceMedium
	}
	return knowledge.ConfidenceLow
}

func (s *Service) recommendations(results []knowledge.Entry) []string {
	if len(results) == 0 {
		return []string{"No information found in knowledge base. Web search recommended."}
	}

	var recs []string
	stale := 0
	lowConfidence := 0
	nonCanon := 0
	for _, entry := range results {
		if !s.store.IsCurrent(entry, s.maxAgeDays) {
			stale++
		}
		if entry.Confidence == knowledge.ConfidenceLow {
			lowConfidence++
		}
		if entry.CanonStatus != knowledge.CanonStatusCanon {
			nonCanon++
		}
	}
	if stale > 0 {
		recs = append(recs, "Some information may be outdated. Consider web search for latest updates.")
	}
	if lowConfidence > 0 {
		recs = append(recs, "Some information has low confidence. Verification recommended.")
	}
	if nonCanon > 0 {
		recs = append(recs, "Some information may be non-canon or speculative.")
	}
	return recs
}

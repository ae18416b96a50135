// Package knowledge implements the in-memory curated fact store with
// crude vector-similarity retrieval.
package knowledge

import "time"

// Category classifies what kind of fact an entry records.
type Category string

// Entry categories.
const (
	CategoryMovie        Category = "movie"
	CategoryTV           Category = "tv"
	CategoryComic        Category = "comic"
	CategoryCharacter    Category = "character"
	CategoryEvent        Category = "event"
	CategoryTrivia       Category = "trivia"
	CategoryEasterEgg    Category = "easter_egg"
	CategoryBehindScenes Category = "behind_scenes"
	CategoryFanTheory    Category = "fan_theory"
	CategoryCanonInfo    Category = "canon_info"
)

// Status tracks where a production stands.
type Status string

// Entry statuses.
const (
	StatusAnnounced    Status = "announced"
	StatusInProduction Status = "in-production"
	StatusReleased     Status = "released"
	StatusCancelled    Status = "cancelled"
	StatusEstablished  Status = "established"
	StatusOngoing      Status = "ongoing"
)

// Confidence is the coarse trust label on a piece of information.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// CanonStatus records whether a fact is official continuity.
type CanonStatus string

// Canon statuses.
const (
	CanonStatusCanon       CanonStatus = "CANON"
	CanonStatusNonCanon    CanonStatus = "NON-CANON"
	CanonStatusSpeculation CanonStatus = "SPECULATION"
	CanonStatusRumor       CanonStatus = "RUMOR"
)

// Entry is one curated fact. Entries are replaced wholesale on update,
// never mutated in place; LastUpdated is refreshed on every replacement.
type Entry struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Content     string      `json:"content" yaml:"content"`
	Category    Category    `json:"category" yaml:"category"`
	Franchise   string      `json:"franchise" yaml:"franchise"`
	ReleaseDate string      `json:"releaseDate,omitempty" yaml:"releaseDate,omitempty"`
	Status      Status      `json:"status" yaml:"status"`
	Verified    bool        `json:"verified" yaml:"verified"`
	Sources     []string    `json:"sources" yaml:"sources"`
	LastUpdated time.Time   `json:"lastUpdated" yaml:"lastUpdated"`
	Confidence  Confidence  `json:"confidence" yaml:"confidence"`
	CanonStatus CanonStatus `json:"canonStatus" yaml:"canonStatus"`
	Tags        []string    `json:"tags" yaml:"tags"`

	// Trivia extensions, zero-valued for non-trivia entries.
	TriviaType         string   `json:"triviaType,omitempty" yaml:"triviaType,omitempty"`
	VerificationScore  int      `json:"verificationScore,omitempty" yaml:"verificationScore,omitempty"`
	SourceAgreement    int      `json:"sourceAgreement,omitempty" yaml:"sourceAgreement,omitempty"`
	ConflictingSources []string `json:"conflictingSources,omitempty" yaml:"conflictingSources,omitempty"`
}

// clone returns a deep copy so callers never share slice storage with
// the store.
func (e Entry) clone() Entry {
	out := e
	out.Sources = append([]string(nil), e.Sources...)
	out.Tags = append([]string(nil), e.Tags...)
	out.ConflictingSources = append([]string(nil), e.ConflictingSources...)
	return out
}

// DateRange bounds a retrieval query by release date.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Query is a read-only retrieval request.
type Query struct {
	Query     string     `json:"query"`
	Category  Category   `json:"category,omitempty"`
	Franchise string     `json:"franchise,omitempty"`
	DateRange *DateRange `json:"dateRange,omitempty"`
	Limit     int        `json:"limit,omitempty"`
}

// EntryPatch is a partial update; nil fields are left unchanged.
type EntryPatch struct {
	Title       *string
	Content     *string
	Category    *Category
	Franchise   *string
	ReleaseDate *string
	Status      *Status
	Verified    *bool
	Sources     []string
	Confidence  *Confidence
	CanonStatus *CanonStatus
	Tags        []string
}

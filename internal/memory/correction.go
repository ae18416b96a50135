package memory

import (
	"regexp"
	"strings"
	"time"

	"github.com/nerdalert/nerdalert-go/internal/knowledge"
)

// Correction is one user-issued fact override.
type Correction struct {
	OriginalClaim string               `json:"originalClaim"`
	CorrectedInfo string               `json:"correctedInfo"`
	Topic         string               `json:"topic"`
	Timestamp     time.Time            `json:"timestamp"`
	Confidence    knowledge.Confidence `json:"confidence"`
	Sources       []string             `json:"sources,omitempty"`
}

// Detection is the outcome of scanning a message for a correction cue.
type Detection struct {
	IsCorrection  bool                 `json:"isCorrection"`
	OriginalClaim string               `json:"originalClaim,omitempty"`
	CorrectedInfo string               `json:"correctedInfo,omitempty"`
	Confidence    knowledge.Confidence `json:"confidence"`
}

// Correction cues ordered from most to least specific. Patterns with a
// capture group yield an extractable corrected clause.
var correctionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)it'?s not .+?,\s*it'?s\s+(.+)`),
	regexp.MustCompile(`(?i)\bactually,?\s+(.+)`),
	regexp.MustCompile(`(?i)^no,\s+(.+)`),
}

var correctionCues = []string{
	"that's wrong",
	"that's incorrect",
	"that is wrong",
	"that is incorrect",
	"you're wrong",
}

// DetectCorrection pattern-matches a message against a fixed set of
// linguistic correction cues. Confidence is MEDIUM when a corrected
// clause could be extracted, LOW when only a cue fired.
func DetectCorrection(message string) Detection {
	trimmed := strings.TrimSpace(message)

	for _, pattern := range correctionPatterns {
		m := pattern.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		corrected := strings.TrimSpace(strings.TrimSuffix(m[1], "."))
		if corrected == "" {
			continue
		}
		return Detection{
			IsCorrection:  true,
			OriginalClaim: trimmed,
			CorrectedInfo: corrected,
			Confidence:    knowledge.ConfidenceMedium,
		}
	}

	lowered := strings.ToLower(trimmed)
	for _, cue := range correctionCues {
		if strings.Contains(lowered, cue) {
			return Detection{
				IsCorrection:  true,
				OriginalClaim: trimmed,
				Confidence:    knowledge.ConfidenceLow,
			}
		}
	}

	return Detection{Confidence: knowledge.ConfidenceLow}
}

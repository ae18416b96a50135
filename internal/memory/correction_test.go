package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nerdalert/nerdalert-go/internal/knowledge"
)

func TestDetectCorrection(t *testing.T) {
	tests := []struct {
		name          string
		message       string
		isCorrection  bool
		correctedInfo string
		confidence    knowledge.Confidence
	}{
		{
			name:          "not X it's Y",
			message:       "It's not Tom Holland, it's Tobey Maguire",
			isCorrection:  true,
			correctedInfo: "Tobey Maguire",
			confidence:    knowledge.ConfidenceMedium,
		},
		{
			name:          "actually clause",
			message:       "Actually, the movie releases in July",
			isCorrection:  true,
			correctedInfo: "the movie releases in July",
			confidence:    knowledge.ConfidenceMedium,
		},
		{
			name:          "leading no",
			message:       "No, Hugh Jackman plays Wolverine",
			isCorrection:  true,
			correctedInfo: "Hugh Jackman plays Wolverine",
			confidence:    knowledge.ConfidenceMedium,
		},
		{
			name:         "cue without extractable clause",
			message:      "That's wrong",
			isCorrection: true,
			confidence:   knowledge.ConfidenceLow,
		},
		{
			name:         "incorrect cue",
			message:      "Sorry but that's incorrect",
			isCorrection: true,
			confidence:   knowledge.ConfidenceLow,
		},
		{
			name:       "plain statement",
			message:    "Tell me about the next Marvel movie",
			confidence: knowledge.ConfidenceLow,
		},
		{
			name:       "no mid-sentence is not a cue",
			message:    "There is no such character in the comics",
			confidence: knowledge.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCorrection(tt.message)
			assert.Equal(t, tt.isCorrection, got.IsCorrection)
			assert.Equal(t, tt.confidence, got.Confidence)
			if tt.correctedInfo != "" {
				assert.Equal(t, tt.correctedInfo, got.CorrectedInfo)
			}
		})
	}
}

func TestWordOverlapSimilarity(t *testing.T) {
	m := WordOverlapMatcher{}

	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "alpha beta gamma", "alpha beta gamma", 1},
		{"disjoint", "alpha beta", "gamma delta", 0},
		{"case insensitive", "Alpha Beta", "alpha beta", 1},
		{"partial", "alpha beta gamma delta", "alpha beta", 0.5},
		// Unique words only: repetition neither inflates nor dilutes.
		{"repeated words collapse", "alpha alpha alpha beta", "alpha beta", 1},
		{"empty", "", "alpha", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

package knowledge

import (
	"context"
	"math"
	"strings"
)

// Vectorizer turns text into a fixed-length numeric vector. The default
// is a crude word-length encoding; swap in an embedding-backed
// implementation without touching retrieval logic.
type Vectorizer interface {
	Vectorize(ctx context.Context, text string) ([]float64, error)
}

// wordLengthDim is the vector length of the crude encoder.
const wordLengthDim = 100

// WordLengthVectorizer is the deliberately crude embedding stand-in:
// position i holds len(word_i)/10 for the first 100 whitespace-split
// lowercased words.
type WordLengthVectorizer struct{}

// Vectorize never fails; the error return satisfies Vectorizer.
func (WordLengthVectorizer) Vectorize(_ context.Context, text string) ([]float64, error) {
	vector := make([]float64, wordLengthDim)
	words := strings.Fields(strings.ToLower(text))
	for i, word := range words {
		if i >= wordLengthDim {
			break
		}
		vector[i] = float64(len(word)) / 10
	}
	return vector, nil
}

// Cosine computes cosine similarity between two vectors of equal length.
// Zero vectors and length mismatches yield 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

package memory

import "strings"

// ClaimMatcher scores how similar two claims are, in [0, 1]. Swapping
// the implementation (edit distance, embeddings) must not change any
// caller.
type ClaimMatcher interface {
	Similarity(a, b string) float64
}

// WordOverlapMatcher measures similarity as the number of shared unique
// words divided by the unique-word count of the longer text. Working on
// unique words keeps a repeated word from skewing the score either way.
type WordOverlapMatcher struct{}

func (WordOverlapMatcher) Similarity(a, b string) float64 {
	wordsA := strings.Fields(strings.ToLower(a))
	wordsB := strings.Fields(strings.ToLower(b))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	shared := 0
	seen := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := setA[w]; ok {
			shared++
		}
	}

	longer := len(setA)
	if len(seen) > longer {
		longer = len(seen)
	}
	return float64(shared) / float64(longer)
}

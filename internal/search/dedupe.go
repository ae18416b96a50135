package search

// dedupeKey picks the identity of a result: link, else title, else snippet.
func dedupeKey(r Result) string {
	if r.Link != "" {
		return "l:" + r.Link
	}
	if r.Title != "" && r.Title != noTitle {
		return "t:" + r.Title
	}
	return "s:" + r.Snippet
}

// RemoveDuplicates drops results whose identity was already seen.
// First occurrence wins; order of survivors is preserved.
func RemoveDuplicates(results []Result) []Result {
	seen := make(map[string]bool, len(results))
	out := make([]Result, 0, len(results))
	for _, r := range results {
		key := dedupeKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

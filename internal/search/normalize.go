package search

// Defensive defaults for absent provider fields.
const (
	unknownSource = "Unknown source"
	noTitle       = "No title"
)

// Normalize maps provider-shaped results into canonical Results.
// Purely structural: no scoring, no filtering, order preserved.
func Normalize(raws []RawResult) []Result {
	results := make([]Result, 0, len(raws))
	for _, raw := range raws {
		switch {
		case raw.Brave != nil:
			results = append(results, Result{
				Title:    orDefault(raw.Brave.Title, noTitle),
				Link:     raw.Brave.URL,
				Snippet:  raw.Brave.Description,
				Source:   orDefault(raw.Provider, unknownSource),
				Position: raw.Brave.Position,
			})
		case raw.Serper != nil:
			results = append(results, Result{
				Title:    orDefault(raw.Serper.Title, noTitle),
				Link:     raw.Serper.Link,
				Snippet:  raw.Serper.Snippet,
				Source:   orDefault(raw.Provider, unknownSource),
				Position: raw.Serper.Position,
			})
		default:
			// Tag without payload: keep the slot with defaults so callers
			// still see one record per provider record.
			results = append(results, Result{
				Title:  noTitle,
				Source: orDefault(raw.Provider, unknownSource),
			})
		}
	}
	return results
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

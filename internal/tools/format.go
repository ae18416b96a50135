package tools

import (
	"fmt"
	"strings"

	"github.com/nerdalert/nerdalert-go/internal/search"
)

// keyMissingReport is surfaced instead of an error when no provider
// credential is configured.
const keyMissingReport = "verification unavailable - key not configured"

// formatResults renders results as SOURCE/TITLE/CONTENT blocks with a
// result-count summary, the shape the model-invocation loop expects.
func formatResults(resp search.Response) string {
	var b strings.Builder
	for _, r := range resp.Results {
		fmt.Fprintf(&b, "SOURCE: %s\n", r.Link)
		fmt.Fprintf(&b, "TITLE: %s\n", r.Title)
		fmt.Fprintf(&b, "CONTENT: %s\n\n", r.Snippet)
	}
	fmt.Fprintf(&b, "Found %d results via %s (quality %.1f, %d distinct domains).",
		len(resp.Results), resp.Provider, resp.QualityScore, len(resp.SourceDiversity))
	if resp.Err != "" {
		fmt.Fprintf(&b, "\nErrors: %s", resp.Err)
	}
	return b.String()
}

// sourceTally counts how many results come from each source class.
// Classes are checked in authority order, one class per result.
type sourceTally struct {
	Official int
	Database int
	News     int
	Wiki     int
	Other    int
}

func tallySources(results []search.Result) sourceTally {
	var t sourceTally
	for _, r := range results {
		switch {
		case search.IsOfficialSource(r.Link):
			t.Official++
		case search.IsDatabaseSource(r.Link):
			t.Database++
		case search.IsNewsSource(r.Link):
			t.News++
		case search.IsWikiSource(r.Link):
			t.Wiki++
		default:
			t.Other++
		}
	}
	return t
}

// confidenceBand maps a source tally to the verification confidence
// label.
func confidenceBand(t sourceTally) string {
	switch {
	case t.Official >= 2:
		return "HIGH"
	case t.Official == 1 && t.Database >= 1:
		return "HIGH"
	case t.Official == 1 || t.Database >= 2:
		return "MEDIUM-HIGH"
	case t.Database == 1 || t.News >= 1 || t.Wiki >= 1:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func formatTally(t sourceTally) string {
	return fmt.Sprintf("Source mix: %d official, %d database, %d news, %d wiki, %d other",
		t.Official, t.Database, t.News, t.Wiki, t.Other)
}

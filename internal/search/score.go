package search

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// domainScores is the static authority table. Hand-tuned.
var domainScores = []struct {
	domain string
	score  int
}{
	// Official franchise and studio sites
	{"marvel.com", 10}, {"dc.com", 10}, {"starwars.com", 10}, {"startrek.com", 10},
	{"disney.com", 10}, {"warnerbros.com", 10}, {"paramount.com", 10},
	{"imdb.com", 9}, {"rottentomatoes.com", 9}, {"metacritic.com", 9},

	// Major fan wikis
	{"fandom.com", 8}, {"memory-alpha.org", 8}, {"wookieepedia.org", 8},
	{"marvel.fandom.com", 8}, {"dc.fandom.com", 8}, {"starwars.fandom.com", 8},

	// Entertainment press
	{"variety.com", 7}, {"hollywoodreporter.com", 7}, {"deadline.com", 7},
	{"thewrap.com", 7}, {"collider.com", 7}, {"screenrant.com", 7},

	// Review and database sites
	{"boxofficemojo.com", 6}, {"comicbook.com", 6},

	// Fan forums
	{"reddit.com", 5},

	// General news
	{"cnn.com", 4}, {"bbc.com", 4}, {"reuters.com", 4},
}

var officialDomains = []string{
	"marvel.com", "dc.com", "starwars.com", "startrek.com",
	"disney.com", "warnerbros.com", "paramount.com", "imdb.com",
}

var newsDomains = []string{
	"variety.com", "hollywoodreporter.com", "deadline.com",
	"cnn.com", "bbc.com", "reuters.com",
}

var wikiDomains = []string{
	"fandom.com", "wikipedia.org", "memory-alpha.org", "wookieepedia.org",
}

var databaseDomains = []string{
	"imdb.com", "rottentomatoes.com", "metacritic.com", "boxofficemojo.com",
}

// qualityBonusDomains trigger the fixed official-source quality bonus.
var qualityBonusDomains = []string{"marvel.com", "dc.com", "starwars.com", "imdb.com"}

// Prioritize scores each result by source authority and recency hints,
// then sorts descending. Longer snippet breaks score ties; exact ties
// keep their relative order.
func Prioritize(results []Result) []Result {
	return prioritizeAt(results, time.Now().Year())
}

func prioritizeAt(results []Result, year int) []Result {
	yearHint := strconv.Itoa(year)
	scored := make([]Result, len(results))
	copy(scored, results)

	for i := range scored {
		scored[i].Score = scoreResult(scored[i], yearHint)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return len(scored[i].Snippet) > len(scored[j].Snippet)
	})
	return scored
}

func scoreResult(r Result, yearHint string) int {
	score := 0
	link := strings.ToLower(r.Link)
	for _, ds := range domainScores {
		if strings.Contains(link, ds.domain) {
			score = ds.score
			break
		}
	}

	// Recency hint: the current year in title or snippet.
	if strings.Contains(r.Title, yearHint) || strings.Contains(r.Snippet, yearHint) {
		score += 2
	}
	// Content richness.
	if len(r.Snippet) > 100 {
		score++
	}
	return score
}

// SourceDiversity collects the distinct bare domains in a result set.
func SourceDiversity(results []Result) []string {
	seen := make(map[string]bool)
	domains := make([]string, 0, len(results))
	for _, r := range results {
		domain := extractDomain(r.Link)
		if domain == "" || seen[domain] {
			continue
		}
		seen[domain] = true
		domains = append(domains, domain)
	}
	return domains
}

// QualityScore aggregates per-result scores with a diversity bonus
// (0.5 per distinct domain, capped at 5) and a fixed official-source
// bonus, clamped to [0, 10].
func QualityScore(results []Result, diversity []string) float64 {
	if len(results) == 0 {
		return 0
	}

	var sum int
	for _, r := range results {
		sum += r.Score
	}
	avg := float64(sum) / float64(len(results))

	diversityBonus := float64(len(diversity)) * 0.5
	if diversityBonus > 5 {
		diversityBonus = 5
	}

	officialBonus := 0.0
	for _, domain := range diversity {
		if containsAny(domain, qualityBonusDomains) {
			officialBonus = 3
			break
		}
	}

	score := avg + diversityBonus + officialBonus
	if score > 10 {
		score = 10
	}
	if score < 0 {
		score = 0
	}
	return score
}

// IsOfficialSource reports whether the URL belongs to an official
// franchise or studio domain.
func IsOfficialSource(link string) bool {
	return containsAny(strings.ToLower(link), officialDomains)
}

// IsNewsSource reports whether the URL belongs to a news domain.
func IsNewsSource(link string) bool {
	return containsAny(strings.ToLower(link), newsDomains)
}

// IsWikiSource reports whether the URL belongs to a wiki domain.
func IsWikiSource(link string) bool {
	return containsAny(strings.ToLower(link), wikiDomains)
}

// IsDatabaseSource reports whether the URL belongs to a review or
// database site.
func IsDatabaseSource(link string) bool {
	return containsAny(strings.ToLower(link), databaseDomains)
}

func containsAny(s string, domains []string) bool {
	for _, d := range domains {
		if strings.Contains(s, d) {
			return true
		}
	}
	return false
}

func extractDomain(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

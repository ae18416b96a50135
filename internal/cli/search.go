package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerdalert/nerdalert-go/internal/search"
)

var (
	searchMax      int
	searchOfficial bool
	searchNoNews   bool
	searchNoWikis  bool
	searchSession  string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Aggregated web search with authority scoring",
	Long: `Search the web across multiple query strategies, deduplicate, and rank
results by source authority.

Examples:
  nerdalert search "Deadpool 3 release date"
  nerdalert search "Fantastic Four cast" --official
  nerdalert search "Batman trivia" --no-news -n 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchMax, "max", "n", 8, "max results")
	searchCmd.Flags().BoolVar(&searchOfficial, "official", false, "only official franchise/studio sources")
	searchCmd.Flags().BoolVar(&searchNoNews, "no-news", false, "exclude news sources")
	searchCmd.Flags().BoolVar(&searchNoWikis, "no-wikis", false, "exclude wiki sources")
	searchCmd.Flags().StringVar(&searchSession, "session", "", "session id for conversation memory")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := context.Background()

	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}

	opts := search.Options{
		MaxResults:             searchMax,
		RequireOfficialSources: searchOfficial,
		IncludeNews:            !searchNoNews,
		IncludeWikis:           !searchNoWikis,
	}

	var resp search.Response
	err = runWithSpinner("Searching...", func() error {
		resp = p.search.AggregatedSearch(ctx, query, opts)
		return nil
	})
	if err != nil {
		return err
	}

	if searchSession != "" {
		p.memory.AddDiscussedTopic(searchSession, query)
	}

	printResponse(resp)
	return nil
}

// printResponse renders a search response, styled on a TTY and plain
// when piped.
func printResponse(resp search.Response) {
	if !resp.Success {
		msg := "No results found."
		if resp.Err != "" {
			msg += " (" + resp.Err + ")"
		}
		if isTTY() {
			fmt.Println(defaultTheme.errorStyle().Render(msg))
		} else {
			fmt.Println(msg)
		}
		return
	}

	for i, r := range resp.Results {
		title := r.Title
		domain := r.Link
		if isTTY() {
			title = defaultTheme.accentStyle().Render(title)
			domain = defaultTheme.hintStyle().Render(domain)
		}
		fmt.Printf("%d. %s\n   %s\n", i+1, title, domain)
		if r.Snippet != "" {
			fmt.Printf("   %s\n", r.Snippet)
		}
		if verbose {
			fmt.Printf("   score: %d\n", r.Score)
		}
		fmt.Println()
	}

	summary := fmt.Sprintf("%d results via %s | quality %.1f/10 | %d distinct domains",
		len(resp.Results), resp.Provider, resp.QualityScore, len(resp.SourceDiversity))
	if isTTY() {
		summary = defaultTheme.successStyle().Render(summary)
	}
	fmt.Println(summary)
}

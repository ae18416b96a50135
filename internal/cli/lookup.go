package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerdalert/nerdalert-go/internal/knowledge"
	"github.com/nerdalert/nerdalert-go/internal/rag"
	"github.com/nerdalert/nerdalert-go/internal/search"
)

var (
	lookupCategory  string
	lookupFranchise string
	lookupNoWeb     bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <query>",
	Short: "Query the curated knowledge base",
	Long: `Look up a topic in the curated knowledge base. When stored knowledge is
missing, stale, or low-confidence, falls through to a live web search.

Examples:
  nerdalert lookup "Deadpool & Wolverine"
  nerdalert lookup "Luke Skywalker" --franchise "Star Wars"
  nerdalert lookup "Batman trivia" --category trivia --no-web`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupCategory, "category", "c", "", "category filter (movie, tv_show, comic, trivia, news, character)")
	lookupCmd.Flags().StringVarP(&lookupFranchise, "franchise", "f", "", "franchise filter")
	lookupCmd.Flags().BoolVar(&lookupNoWeb, "no-web", false, "never fall through to web search")
}

func runLookup(cmd *cobra.Command, args []string) error {
	query := args[0]
	ctx := context.Background()

	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}

	report, err := p.rag.EnhancedSearch(ctx, query, knowledge.Category(lookupCategory), lookupFranchise)
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	printRAGReport(report)

	if report.WebSearchNeeded && !lookupNoWeb {
		if !p.search.HasConfiguredProvider() {
			fmt.Println("\nWeb search needed, but no provider credentials are configured.")
			return nil
		}
		var resp search.Response
		err = runWithSpinner("Searching the web...", func() error {
			resp = p.search.AggregatedSearch(ctx, query, search.DefaultOptions())
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Println()
		printResponse(resp)
	}
	return nil
}

func printRAGReport(report rag.SearchReport) {
	if len(report.Results) == 0 {
		fmt.Println("No stored knowledge matched.")
	}

	for _, entry := range report.Results {
		title := entry.Title
		if isTTY() {
			title = defaultTheme.accentStyle().Render(title)
		}
		fmt.Printf("%s [%s/%s]\n", title, entry.Category, entry.Franchise)
		fmt.Printf("  %s\n", entry.Content)
		fmt.Printf("  status: %s | canon: %s | confidence: %s | updated: %s\n\n",
			entry.Status, entry.CanonStatus, entry.Confidence,
			entry.LastUpdated.Format("2006-01-02"))
	}

	for _, rec := range report.Recommendations {
		line := "note: " + rec
		if isTTY() {
			line = defaultTheme.hintStyle().Render(line)
		}
		fmt.Println(line)
	}
}

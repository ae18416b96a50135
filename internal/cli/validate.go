package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerdalert/nerdalert-go/internal/knowledge"
)

var validateCategory string

var validateCmd = &cobra.Command{
	Use:   "validate <topic>",
	Short: "Validate stored knowledge on a topic",
	Long: `Check whether stored knowledge on a topic is current, what confidence
it carries, whether entries conflict, and which entry is canonical.

Examples:
  nerdalert validate "Deadpool & Wolverine"
  nerdalert validate "Fantastic Four" --category movie`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateCategory, "category", "c", "", "category filter")
}

func runValidate(cmd *cobra.Command, args []string) error {
	topic := args[0]
	ctx := context.Background()

	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}

	validation := p.rag.ValidateInformation(topic, knowledge.Category(validateCategory))

	fmt.Printf("Topic: %s\n", topic)
	if validation.LastUpdated == nil {
		fmt.Println("No stored information.")
	} else {
		state := "stale"
		if validation.IsCurrent {
			state = "current"
		}
		fmt.Printf("Currency:   %s (last updated %s)\n", state, validation.LastUpdated.Format("2006-01-02"))
	}
	fmt.Printf("Confidence: %s\n", validation.Confidence)
	if validation.NeedsUpdate {
		fmt.Println("Needs update: yes")
	}

	conflicts, err := p.rag.CheckConflicts(ctx, topic)
	if err != nil {
		return fmt.Errorf("check conflicts: %w", err)
	}
	if conflicts.HasConflicts {
		header := fmt.Sprintf("\nConflicts (%d):", len(conflicts.Conflicts))
		if isTTY() {
			header = defaultTheme.errorStyle().Render(header)
		}
		fmt.Println(header)
		for _, c := range conflicts.Conflicts {
			fmt.Printf("  [%s] %s vs %s: %s\n", c.Type, c.Entry1.ID, c.Entry2.ID, c.Description)
		}
	} else {
		fmt.Println("\nNo conflicts in stored knowledge.")
	}

	if canonical, ok, err := p.rag.CanonicalInfo(ctx, topic, ""); err == nil && ok {
		fmt.Printf("\nCanonical: %s (%s)\n", canonical.Title, canonical.CanonStatus)
	}
	return nil
}

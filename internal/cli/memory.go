package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nerdalert/nerdalert-go/internal/client"
)

var memoryServerURL string

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect or clear session memory on a running server",
}

var memoryGetCmd = &cobra.Command{
	Use:   "get <sessionId>",
	Short: "Show one session's discussed topics, recent messages, and corrections",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemoryGet,
}

var memoryClearCmd = &cobra.Command{
	Use:   "clear <sessionId>",
	Short: "Delete one session's memory (idempotent)",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemoryClear,
}

var memoryNewCmd = &cobra.Command{
	Use:   "new-session",
	Short: "Generate a fresh session id",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(uuid.NewString())
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show runtime metrics of a running server",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	memoryCmd.PersistentFlags().StringVar(&memoryServerURL, "server", "", "inspection server URL (default $NERDALERT_SERVER_URL)")
	statsCmd.Flags().StringVar(&memoryServerURL, "server", "", "inspection server URL (default $NERDALERT_SERVER_URL)")

	memoryCmd.AddCommand(memoryGetCmd)
	memoryCmd.AddCommand(memoryClearCmd)
	memoryCmd.AddCommand(memoryNewCmd)
}

func runMemoryGet(cmd *cobra.Command, args []string) error {
	sessionID := args[0]
	c := client.New(memoryServerURL)

	mem, err := c.Memory(context.Background(), sessionID)
	if errors.Is(err, client.ErrNotFound) {
		fmt.Printf("No memory for session %s.\n", sessionID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch memory: %w", err)
	}

	fmt.Printf("Session: %s (last update %s)\n", mem.SessionID, mem.LastUpdate.Format("2006-01-02 15:04:05"))

	fmt.Printf("\nDiscussed topics (%d):\n", len(mem.DiscussedTopics))
	for _, topic := range mem.DiscussedTopics {
		fmt.Printf("  - %s\n", topic)
	}

	if len(mem.RecentMessages) > 0 {
		fmt.Printf("\nRecent messages (%d):\n", len(mem.RecentMessages))
		for _, msg := range mem.RecentMessages {
			if len(msg) > 80 {
				msg = msg[:80] + "..."
			}
			fmt.Printf("  - %s\n", msg)
		}
	}

	if len(mem.Corrections) > 0 {
		fmt.Printf("\nCorrections (%d):\n", len(mem.Corrections))
		for _, c := range mem.Corrections {
			fmt.Printf("  - NOT %q -> %q [%s]\n", c.OriginalClaim, c.CorrectedInfo, c.Confidence)
		}
	}
	return nil
}

func runMemoryClear(cmd *cobra.Command, args []string) error {
	sessionID := args[0]
	c := client.New(memoryServerURL)

	if err := c.ClearMemory(context.Background(), sessionID); err != nil {
		return fmt.Errorf("clear memory: %w", err)
	}
	fmt.Printf("Session %s memory cleared.\n", sessionID)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	c := client.New(memoryServerURL)

	snap, err := c.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}

	fmt.Printf("Uptime: %.0fs\n\n", snap.UptimeSeconds)
	printSnapshot := func(name string, count, totalMs, minMs, maxMs int64, avgMs float64) {
		fmt.Printf("%-16s count=%d total=%dms avg=%.1fms min=%dms max=%dms\n",
			name, count, totalMs, avgMs, minMs, maxMs)
	}
	if s := snap.Search; s != nil {
		printSnapshot("search", s.Count, s.TotalTimeMs, s.MinTimeMs, s.MaxTimeMs, s.AvgTimeMs)
	}
	if s := snap.ProviderBrave; s != nil {
		printSnapshot("provider brave", s.Count, s.TotalTimeMs, s.MinTimeMs, s.MaxTimeMs, s.AvgTimeMs)
	}
	if s := snap.ProviderSerper; s != nil {
		printSnapshot("provider serper", s.Count, s.TotalTimeMs, s.MinTimeMs, s.MaxTimeMs, s.AvgTimeMs)
	}
	if s := snap.RAGRetrieve; s != nil {
		printSnapshot("rag retrieve", s.Count, s.TotalTimeMs, s.MinTimeMs, s.MaxTimeMs, s.AvgTimeMs)
	}
	if s := snap.MemoryWrite; s != nil {
		printSnapshot("memory write", s.Count, s.TotalTimeMs, s.MinTimeMs, s.MaxTimeMs, s.AvgTimeMs)
	}
	return nil
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events [import-id]",
	Short: "Show recent events",
	Long: `Show recent events, or the full event history of one import.

Examples:
  mediasync events           # Recent events across the system
  mediasync events 3         # History of import #3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEventsCmd,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
}

func runEventsCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	client := NewClient(serverURL)

	var events *ListEventsResponse
	var err error
	if len(args) > 0 {
		id, parseErr := strconv.ParseInt(args[0], 10, 64)
		if parseErr != nil {
			return fmt.Errorf("invalid import ID: %s", args[0])
		}
		events, err = client.ImportEvents(id)
	} else {
		events, err = client.Events(limit)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	if jsonOutput {
		printJSON(events)
		return nil
	}

	if len(events.Items) == 0 {
		fmt.Println("No events")
		return nil
	}

	fmt.Printf("Recent Events (%d):\n\n", events.Total)
	fmt.Printf("  %-12s %-18s %-12s %s\n", "TIME", "TYPE", "ENTITY", "SUMMARY")
	fmt.Println("  " + strings.Repeat("-", 75))

	for _, e := range events.Items {
		entity := fmt.Sprintf("%s/%d", e.EntityType, e.EntityID)
		fmt.Printf("  %-12s %-18s %-12s %s\n", formatRFC3339Ago(e.OccurredAt), e.EventType, entity, e.Summary)
	}

	return nil
}

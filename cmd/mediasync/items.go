package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Browse imported library items",
	RunE:  runItemsCmd,
}

func init() {
	rootCmd.AddCommand(itemsCmd)
	itemsCmd.Flags().StringP("type", "t", "", "Filter by media type")
	itemsCmd.Flags().IntP("limit", "n", 50, "Number of items to show")
	itemsCmd.Flags().Int("offset", 0, "Pagination offset")
}

func runItemsCmd(cmd *cobra.Command, args []string) error {
	mediaType, _ := cmd.Flags().GetString("type")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	client := NewClient(serverURL)
	items, err := client.Items(mediaType, limit, offset)
	if err != nil {
		return fmt.Errorf("failed to fetch items: %w", err)
	}

	if jsonOutput {
		printJSON(items)
		return nil
	}

	if len(items.Items) == 0 {
		fmt.Println("No items")
		return nil
	}

	fmt.Printf("Items (%d-%d of %d):\n\n", offset+1, offset+len(items.Items), items.Total)
	fmt.Printf("  %-6s %-12s %-40s %-6s %s\n", "ID", "TYPE", "TITLE", "YEAR", "STATE")
	fmt.Println("  " + strings.Repeat("-", 75))

	for _, it := range items.Items {
		title := it.Title
		if it.MediaType == "episode" && it.ShowTitle != "" {
			title = fmt.Sprintf("%s S%02dE%02d %s", it.ShowTitle, it.Season, it.Episode, it.Title)
		}
		year := ""
		if it.Year > 0 {
			year = fmt.Sprint(it.Year)
		}
		state := "disabled"
		if it.Enabled {
			state = "enabled"
		}
		fmt.Printf("  %-6d %-12s %-40s %-6s %s\n", it.ID, it.MediaType, title, year, state)
	}

	return nil
}

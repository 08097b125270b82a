package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy title search over the imported library",
	Long: `Search imported items by title. Matching is fuzzy, so close
spellings and partial titles work.

Examples:
  mediasync search terminator
  mediasync search "breaking bad" --type tvshow`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchCmd,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringP("type", "t", "", "Filter by media type")
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	mediaType, _ := cmd.Flags().GetString("type")
	query := strings.Join(args, " ")

	client := NewClient(serverURL)
	results, err := client.Search(query, mediaType)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		printJSON(results)
		return nil
	}

	if len(results.Items) == 0 {
		fmt.Printf("No matches for %q\n", query)
		return nil
	}

	fmt.Printf("Matches for %q (%d):\n\n", query, results.Total)
	fmt.Printf("  %-6s %-12s %-40s %s\n", "SCORE", "TYPE", "TITLE", "YEAR")
	fmt.Println("  " + strings.Repeat("-", 70))

	for _, res := range results.Items {
		year := ""
		if res.Item.Year > 0 {
			year = fmt.Sprint(res.Item.Year)
		}
		fmt.Printf("  %-6.2f %-12s %-40s %s\n", res.Score, res.Item.MediaType, res.Item.Title, year)
	}

	return nil
}

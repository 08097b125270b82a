package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "System status",
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	fmt.Printf("mediasync | Server: %s | Status: %s\n\n", serverURL, status.Status)

	fmt.Println("Registry")
	fmt.Printf("  Sources:  %d\n", status.Sources)
	fmt.Printf("  Imports:  %d\n", status.Imports)
	fmt.Println()

	fmt.Println("Library")
	for _, mt := range []string{"movie", "videoset", "tvshow", "season", "episode", "musicvideo"} {
		if n := status.Items[mt]; n > 0 {
			fmt.Printf("  %-12s %d\n", mt+":", n)
		}
	}
	fmt.Println()

	if status.NextAutoSync != nil {
		if t, err := time.Parse(time.RFC3339, *status.NextAutoSync); err == nil {
			fmt.Printf("Next auto-sync: %s (%s)\n", t.Format(time.RFC1123), time.Until(t).Round(time.Second))
		}
	}

	return nil
}

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync <import-id | source-identifier>",
	Short: "Run synchronization for an import or a whole source",
	Long: `Run synchronization for one import (by numeric ID) or for every
import of a source (by identifier).

Examples:
  mediasync sync 3            # Sync import #3
  mediasync sync plex-main    # Sync all imports of plex-main`,
	Args: cobra.ExactArgs(1),
	RunE: runSyncCmd,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSyncCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
		run, err := client.SyncImport(id)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		if jsonOutput {
			printJSON(run)
			return nil
		}
		printRun(fmt.Sprintf("import %d", id), run)
		return nil
	}

	runs, err := client.SyncSource(args[0])
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	if jsonOutput {
		printJSON(runs)
		return nil
	}
	for i := range runs {
		printRun(args[0], &runs[i])
	}
	return nil
}

func printRun(target string, run *RunResponse) {
	fmt.Printf("Synced %s (run %s): %d added, %d updated, %d removed, %d unchanged, %d failed\n",
		target, run.RunID, run.Added, run.Updated, run.Removed, run.Unchanged, run.Failed)
}

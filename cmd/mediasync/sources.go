package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage media sources",
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered sources",
	RunE:  runSourcesList,
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add <identifier> <base-path>",
	Short: "Register a new source",
	Long: `Register a new media source.

Examples:
  mediasync sources add plex-main smb://plex/media/ --importer plex
  mediasync sources add nas nfs://nas/video/ --name "Basement NAS"`,
	Args: cobra.ExactArgs(2),
	RunE: runSourcesAdd,
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove <identifier>",
	Short: "Remove a source and everything it imported",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesRemove,
}

var sourcesActivateCmd = &cobra.Command{
	Use:   "activate <identifier>",
	Short: "Activate a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSourceActive(args[0], true)
	},
}

var sourcesDeactivateCmd = &cobra.Command{
	Use:   "deactivate <identifier>",
	Short: "Deactivate a source (its items stay but are disabled)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSourceActive(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)
	sourcesCmd.AddCommand(sourcesActivateCmd)
	sourcesCmd.AddCommand(sourcesDeactivateCmd)

	sourcesAddCmd.Flags().String("name", "", "Friendly name (defaults to identifier)")
	sourcesAddCmd.Flags().String("importer", "", "Importer protocol for this source")
}

func runSourcesList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	sources, err := client.Sources()
	if err != nil {
		return fmt.Errorf("failed to fetch sources: %w", err)
	}

	if jsonOutput {
		printJSON(sources)
		return nil
	}

	if len(sources.Items) == 0 {
		fmt.Println("No sources registered")
		return nil
	}

	fmt.Printf("Sources (%d):\n\n", sources.Total)
	fmt.Printf("  %-20s %-24s %-8s %-12s %s\n", "IDENTIFIER", "NAME", "STATE", "LAST SYNC", "BASE PATH")
	fmt.Println("  " + strings.Repeat("-", 90))

	for _, src := range sources.Items {
		state := "inactive"
		if src.Active && src.Ready {
			state = "ready"
		} else if src.Active {
			state = "offline"
		}
		lastSync := "never"
		if src.LastSynced != nil {
			lastSync = formatRFC3339Ago(*src.LastSynced)
		}
		fmt.Printf("  %-20s %-24s %-8s %-12s %s\n",
			src.Identifier, src.FriendlyName, state, lastSync, src.BasePath)
	}

	return nil
}

func runSourcesAdd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	importerID, _ := cmd.Flags().GetString("importer")

	client := NewClient(serverURL)
	src, err := client.AddSource(args[0], args[1], name, importerID)
	if err != nil {
		return fmt.Errorf("failed to add source: %w", err)
	}

	if jsonOutput {
		printJSON(src)
		return nil
	}

	fmt.Printf("Added source %s (%s)\n", src.Identifier, src.FriendlyName)
	return nil
}

func runSourcesRemove(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	if err := client.RemoveSource(args[0]); err != nil {
		return fmt.Errorf("failed to remove source: %w", err)
	}
	fmt.Printf("Removed source %s\n", args[0])
	return nil
}

func setSourceActive(identifier string, active bool) error {
	client := NewClient(serverURL)
	src, err := client.SetSourceActive(identifier, active)
	if err != nil {
		return fmt.Errorf("failed to update source: %w", err)
	}

	if jsonOutput {
		printJSON(src)
		return nil
	}

	verb := "Deactivated"
	if active {
		verb = "Activated"
	}
	fmt.Printf("%s source %s\n", verb, src.Identifier)
	return nil
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var importsCmd = &cobra.Command{
	Use:   "imports",
	Short: "Manage imports",
}

var importsListCmd = &cobra.Command{
	Use:   "list [source-identifier]",
	Short: "List imports, optionally for one source",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImportsList,
}

var importsAddCmd = &cobra.Command{
	Use:   "add <source-identifier> <media-type>...",
	Short: "Add an import for a source",
	Long: `Add an import covering one or more media types of a source.

Media types: movie, videoset, tvshow, season, episode, musicvideo

Examples:
  mediasync imports add plex-main movie
  mediasync imports add plex-main tvshow season episode --trigger auto`,
	Args: cobra.MinimumNArgs(2),
	RunE: runImportsAdd,
}

var importsRemoveCmd = &cobra.Command{
	Use:   "remove <import-id>",
	Short: "Remove an import and every item it contributed",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportsRemove,
}

func init() {
	rootCmd.AddCommand(importsCmd)
	importsCmd.AddCommand(importsListCmd)
	importsCmd.AddCommand(importsAddCmd)
	importsCmd.AddCommand(importsRemoveCmd)

	importsAddCmd.Flags().String("trigger", "", "Trigger mode: auto or manual (default manual)")
}

func runImportsList(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)

	var imports *ListImportsResponse
	var err error
	if len(args) > 0 {
		imports, err = client.SourceImports(args[0])
	} else {
		imports, err = client.Imports()
	}
	if err != nil {
		return fmt.Errorf("failed to fetch imports: %w", err)
	}

	if jsonOutput {
		printJSON(imports)
		return nil
	}

	if len(imports.Items) == 0 {
		fmt.Println("No imports")
		return nil
	}

	fmt.Printf("Imports (%d):\n\n", imports.Total)
	fmt.Printf("  %-5s %-20s %-30s %-8s %s\n", "ID", "SOURCE", "MEDIA TYPES", "TRIGGER", "LAST SYNC")
	fmt.Println("  " + strings.Repeat("-", 80))

	for _, imp := range imports.Items {
		lastSync := "never"
		if imp.LastSynced != nil {
			lastSync = formatRFC3339Ago(*imp.LastSynced)
		}
		fmt.Printf("  %-5d %-20s %-30s %-8s %s\n",
			imp.ID, imp.SourceID, strings.Join(imp.MediaTypes, ","), imp.Trigger, lastSync)
	}

	return nil
}

func runImportsAdd(cmd *cobra.Command, args []string) error {
	trigger, _ := cmd.Flags().GetString("trigger")

	client := NewClient(serverURL)
	imp, err := client.AddImport(args[0], args[1:], trigger)
	if err != nil {
		return fmt.Errorf("failed to add import: %w", err)
	}

	if jsonOutput {
		printJSON(imp)
		return nil
	}

	fmt.Printf("Added import %d for %s (%s, trigger %s)\n",
		imp.ID, imp.SourceID, strings.Join(imp.MediaTypes, ","), imp.Trigger)
	return nil
}

func runImportsRemove(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid import ID: %s", args[0])
	}

	client := NewClient(serverURL)
	if err := client.RemoveImport(id); err != nil {
		return fmt.Errorf("failed to remove import: %w", err)
	}
	fmt.Printf("Removed import %d\n", id)
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediasync/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the daemon configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config file",
	Long: `Write a commented starter config file.

Without a path, writes to the default location
($XDG_CONFIG_HOME/mediasync/config.toml).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show which config file would be used",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Discover()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Discover()
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithoutValidation(path)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(cfg)
		return nil
	}

	fmt.Printf("Config: %s\n\n", path)
	fmt.Printf("  Server:    %s:%d (log %s)\n", cfg.Server.Host, cfg.Server.Port, cfg.Server.LogLevel)
	fmt.Printf("  Database:  %s\n", cfg.Database.Path)
	fmt.Printf("  Sync:      every %s, cleanup after sync: %t\n",
		cfg.Sync.Interval.Duration, cfg.Sync.ShouldCleanupAfterSync())
	fmt.Printf("  Events:    retain %s\n", cfg.Events.Retention.Duration)
	return nil
}

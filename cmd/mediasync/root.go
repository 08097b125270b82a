package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "mediasync",
	Short: "CLI client for the mediasync import daemon",
	Long: `mediasync - CLI client for the mediasync import daemon

Manage media sources and imports, trigger synchronization runs,
and browse the imported library.

Run 'mediasyncd' to start the server daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8585", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("mediasync {{.Version}}\n")
}

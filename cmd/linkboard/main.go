package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "linkboard",
	Short: "Linkboard - a personal dashboard of link groups, RSS feeds and AI chat",
	Long: `Linkboard serves a configurable home page of link groups, with an
admin settings surface, RSS aggregation and an AI chat assistant.
All state lives in a single JSON document on disk.`,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

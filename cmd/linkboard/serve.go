package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mightywomble/linksdashboard/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Linkboard server",
	Long: `Start the Linkboard web server.

Examples:
  linkboard serve               # Run on the configured port (default 5065)
  linkboard serve --port 8080   # Override port

Environment variables:
  LINKBOARD_SERVER_PORT          Server port (default: 5065)
  LINKBOARD_STORAGE_CONFIG_FILE  Path to the dashboard document
  LINKBOARD_AUTH_SESSION_SECRET  Session signing secret
  LINKBOARD_LOG_FORMAT           Log format: text, json`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := server.Config{
		Port:    servePort,
		Version: Version,
	}

	if err := server.RunWithSignalHandling(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

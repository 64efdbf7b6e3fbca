package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/yigit/benchtrack/internal/bootstrap"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "benchctl",
	Short: "BenchTrack maintenance and MCP tooling",
	Long: `benchctl manages the BenchTrack database and serves the training and
resume tools over the Model Context Protocol.

Examples:
  benchctl migrate            # Apply pending SQL migrations
  benchctl seed               # Insert the default admin and sample data
  benchctl mcp training       # Serve training tools on stdin/stdout
  benchctl mcp resume         # Serve resume tools on stdin/stdout`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", bootstrap.ConfigPath(), "Path to config.yaml")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(mcpCmd)
}

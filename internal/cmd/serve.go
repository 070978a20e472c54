package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hargabyte/specmap/internal/mcp"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server for AI agent integration",
	Long: `Start an MCP (Model Context Protocol) server over stdio.

This allows AI agents to request extraction reports and rule findings
through MCP tools instead of spawning CLI commands.

Available Tools:
  specmap_extract   Extract tests, hooks, and exported functions
  specmap_check     Run validation rules over extracted files

Examples:
  specmap serve                        # Start with stdio transport`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServe implements the serve command logic
func runServe(cmd *cobra.Command, args []string) error {
	workDir, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := loadConfig(workDir)
	if err != nil {
		return err
	}

	return mcp.New(Version, cfg).ServeStdio()
}

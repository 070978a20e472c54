// Package cmd contains all CLI commands for specmap.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is the current version of specmap
	Version = "0.1.0"

	// Global flags
	verbose      bool
	configPath   string
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "specmap",
	Short: "Structured extraction of JavaScript/TypeScript test suites",
	Long: `specmap scans JavaScript/TypeScript test files and derives a structured,
serializable record of test cases, lifecycle hooks, exported functions, and
the calls each of them makes.

The output is a per-file mapping designed for downstream validation rules
(duplicate detection, naming conventions, dead-code detection) that would
otherwise have to re-parse source text themselves.

Main capabilities:
  - Extract tests, hooks, and exported functions with their call lists
  - Reconstruct describe/it nesting with skip/only/platform modifiers
  - Recognize the api({...}).method(...) configuration convention
  - Run validation rules over the extracted records
  - Serve extraction over MCP for AI agent integration

Examples:
  specmap extract ./e2e                # Extract all test files under ./e2e
  specmap extract login.test.ts        # Extract a single file
  specmap check ./e2e                  # Run validation rules
  specmap serve                        # Start the MCP server

See 'specmap <command> --help' for command-specific options.`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .specmap/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format (json|yaml; default from config)")
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hargabyte/specmap/internal/config"
	"github.com/hargabyte/specmap/internal/output"
	"github.com/hargabyte/specmap/internal/scan"
	"github.com/hargabyte/specmap/internal/store"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [path]",
	Short: "Extract tests, hooks, and exported functions from test files",
	Long: `Extract traverses the specified directory (or current directory if none
given), parses each test file with tree-sitter, and emits one record per
file describing its test cases, lifecycle hooks, exported functions, and
the calls each makes.

Files whose content is unchanged since the last run are served from the
.specmap/specmap.db cache unless --no-cache is given.

A file the extractor refuses to process (for example a multi-declarator
export statement containing a function) is reported with its line and
column; the remaining files are still extracted and the command exits
non-zero.

Examples:
  specmap extract                      # Extract test files under .
  specmap extract ./e2e                # Extract a specific directory
  specmap extract login.test.ts        # Extract a single file
  specmap extract --no-cache ./e2e     # Ignore the report cache`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

// Command-line flags
var extractNoCache bool

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&extractNoCache, "no-cache", false, "Re-extract every file, ignoring the report cache")
}

// runExtract implements the extract command logic
func runExtract(cmd *cobra.Command, args []string) error {
	scanPath := "."
	if len(args) > 0 {
		scanPath = args[0]
	}
	absPath, err := filepath.Abs(scanPath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := loadConfig(absPath)
	if err != nil {
		return err
	}

	format, err := resolveFormat(cfg)
	if err != nil {
		return err
	}

	opts := scan.Options{
		Suffixes: cfg.Scan.Suffixes,
		Excludes: cfg.Scan.Exclude,
	}

	if !extractNoCache {
		reportStore, err := openStore(absPath)
		if err != nil {
			return err
		}
		if reportStore != nil {
			defer reportStore.Close()
			opts.Store = reportStore
		}
	}

	result, err := scan.Run(absPath, opts)
	if err != nil {
		return err
	}

	if verbose {
		for _, skipped := range result.Skipped {
			fmt.Fprintf(os.Stderr, "skipped (interpreter directive): %s\n", skipped)
		}
	}

	if err := output.Write(os.Stdout, result.Report, format); err != nil {
		return err
	}

	if len(result.Failures) > 0 {
		for _, failure := range result.Failures {
			fmt.Fprintln(os.Stderr, failure)
		}
		return fmt.Errorf("%d file(s) could not be extracted", len(result.Failures))
	}

	return nil
}

// loadConfig loads configuration, honoring the global --config flag.
func loadConfig(workDir string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load(workDir)
}

// resolveFormat resolves the output format from the global flag, falling
// back to the configured default.
func resolveFormat(cfg *config.Config) (output.Format, error) {
	if outputFormat != "" {
		return output.ParseFormat(outputFormat)
	}
	return output.ParseFormat(cfg.Output.Format)
}

// openStore opens the report cache in the nearest .specmap directory,
// creating one next to the scan path when none exists. A store that cannot
// be opened degrades to uncached extraction.
func openStore(scanPath string) (*store.Store, error) {
	configDir, err := config.FindConfigDir(scanPath)
	if err != nil {
		base := scanPath
		if info, statErr := os.Stat(scanPath); statErr == nil && !info.IsDir() {
			base = filepath.Dir(scanPath)
		}
		configDir, err = config.EnsureConfigDir(base)
		if err != nil {
			return nil, err
		}
	}

	reportStore, err := store.Open(configDir)
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "report cache unavailable: %v\n", err)
		}
		return nil, nil
	}
	return reportStore, nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hargabyte/specmap/internal/output"
	"github.com/hargabyte/specmap/internal/rules"
	"github.com/hargabyte/specmap/internal/scan"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Run validation rules over extracted test files",
	Long: `Check extracts the test files under the given path and runs the
validation rules over the result:

  focused-test       a test with an effective .only modifier
  empty-test         a test whose body makes no calls
  duplicate-group    sibling describe blocks sharing a label
  annotation-misuse  non-boolean api({...}) configuration values

Findings are printed one per line (or as json/yaml with --format). The
command exits non-zero when any finding or extraction failure occurred.

Examples:
  specmap check ./e2e
  specmap check --disable focused-test ./e2e
  specmap check --format json ./e2e`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

// Command-line flags
var checkDisabled []string

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringSliceVar(&checkDisabled, "disable", nil, "Rules to disable (comma-separated)")
}

// runCheck implements the check command logic
func runCheck(cmd *cobra.Command, args []string) error {
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

	disabled := cfg.Rules.Disabled
	disabled = append(disabled, checkDisabled...)

	result, err := scan.Run(absPath, scan.Options{
		Suffixes: cfg.Scan.Suffixes,
		Excludes: cfg.Scan.Exclude,
	})
	if err != nil {
		return err
	}

	findings := rules.Run(result.Report, disabled)

	if err := writeFindings(findings); err != nil {
		return err
	}

	for _, failure := range result.Failures {
		fmt.Fprintln(os.Stderr, failure)
	}

	if len(findings) > 0 || len(result.Failures) > 0 {
		return fmt.Errorf("%d finding(s), %d extraction failure(s)", len(findings), len(result.Failures))
	}
	return nil
}

// writeFindings prints findings as text lines, or as structured output when
// --format is given.
func writeFindings(findings []rules.Finding) error {
	if outputFormat == "" {
		for _, finding := range findings {
			fmt.Printf("%s@%d: [%s] %s\n", finding.File, finding.Offset, finding.Rule, finding.Message)
		}
		return nil
	}

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	switch format {
	case output.FormatJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(findings)
	default:
		return yaml.NewEncoder(os.Stdout).Encode(findings)
	}
}

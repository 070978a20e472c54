package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/hargabyte/specmap/internal/extract"
)

// Report maps each processed file path to its extraction result.
type Report map[string]*extract.FileReport

// Files returns the report's file paths in sorted order.
func (r Report) Files() []string {
	files := make([]string, 0, len(r))
	for path := range r {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// Write serializes the report to w in the given format. JSON output is
// indented; map keys are emitted in sorted order by both encoders.
func Write(w io.Writer, report Report, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return nil

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("invalid format: %q", format)
	}
}

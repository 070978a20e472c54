// Package output provides the serialized report schema and writers.
package output

import (
	"fmt"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatJSON is the default machine-readable JSON output.
	FormatJSON Format = "json"

	// FormatYAML is the self-documenting YAML output.
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format string into a Format value.
// Accepts: "json", "yaml" (case-insensitive).
// Returns an error for invalid format values.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format: %q (expected json or yaml)", s)
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

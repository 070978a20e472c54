package config

import "fmt"

// DefaultSuffixes are the file name suffixes treated as test sources when no
// config overrides them.
var DefaultSuffixes = []string{
	".test.js", ".test.jsx", ".test.ts", ".test.tsx",
	".spec.js", ".spec.jsx", ".spec.ts", ".spec.tsx",
	".e2e.js", ".e2e.ts",
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Suffixes: append([]string(nil), DefaultSuffixes...),
			Exclude:  []string{"node_modules/**", "**/node_modules/**"},
		},
		Output: OutputConfig{
			Format: "json",
		},
		Rules: RulesConfig{},
	}
}

// Merge fills zero-valued fields of loaded from defaults, returning loaded.
func Merge(loaded, defaults *Config) *Config {
	if len(loaded.Scan.Suffixes) == 0 {
		loaded.Scan.Suffixes = defaults.Scan.Suffixes
	}
	if len(loaded.Scan.Exclude) == 0 {
		loaded.Scan.Exclude = defaults.Scan.Exclude
	}
	if loaded.Output.Format == "" {
		loaded.Output.Format = defaults.Output.Format
	}
	return loaded
}

// Validate checks a merged config for consistency.
func Validate(cfg *Config) error {
	switch cfg.Output.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("%w: output.format must be json or yaml, got %q", ErrInvalidConfig, cfg.Output.Format)
	}

	for _, suffix := range cfg.Scan.Suffixes {
		if suffix == "" {
			return fmt.Errorf("%w: scan.suffixes must not contain empty entries", ErrInvalidConfig)
		}
	}

	return nil
}

// Package config loads and validates specmap configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the specmap configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the specmap configuration directory.
const ConfigDirName = ".specmap"

// Config holds all specmap configuration.
type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Output OutputConfig `yaml:"output"`
	Rules  RulesConfig  `yaml:"rules"`
}

// ScanConfig holds configuration for test file discovery.
type ScanConfig struct {
	// Suffixes lists the file name suffixes that mark a file as a test
	// source worth extracting.
	Suffixes []string `yaml:"suffixes"`
	// Exclude lists glob patterns for paths to skip.
	Exclude []string `yaml:"exclude"`
}

// OutputConfig holds configuration for report output.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// RulesConfig toggles the downstream validation rules run by specmap check.
type RulesConfig struct {
	Disabled []string `yaml:"disabled"`
}

// ErrConfigNotFound is returned when no config file can be found.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .specmap/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		return DefaultConfig(), nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir walks up the directory tree from startDir looking for a
// .specmap directory. Returns ErrConfigNotFound if none exists.
func FindConfigDir(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving start dir: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ConfigDirName)
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}
		dir = parent
	}
}

// EnsureConfigDir creates the .specmap directory under baseDir if it does
// not already exist and returns its path.
func EnsureConfigDir(baseDir string) (string, error) {
	dir := filepath.Join(baseDir, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}
	return dir, nil
}

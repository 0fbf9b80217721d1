// Package config provides project-level configuration for sgex.
// It supports loading configuration from .sgex/config.yaml files with
// proper precedence: CLI flags > project config > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name for sgex configuration
	ConfigDir = ".sgex"
	// ConfigFile is the name of the configuration file
	ConfigFile = "config.yaml"
	// ConfigPath is the full path to the config file relative to project root
	ConfigPath = ConfigDir + "/" + ConfigFile
)

// ProjectConfig represents the project-level configuration for sgex.
// It provides defaults that can be overridden by CLI flags.
type ProjectConfig struct {
	// Repository is the default DAK repository in owner/name form
	Repository string `yaml:"repository,omitempty"`

	// Branch is the default working branch
	Branch string `yaml:"branch,omitempty"`

	// StateDir overrides where staging state and caches are kept
	// (default ~/.sgex)
	StateDir string `yaml:"state_dir,omitempty"`

	// LogLevel is the default log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level,omitempty"`
}

// Load loads the project configuration from the given directory.
// It searches for .sgex/config.yaml in the directory and its parents.
//
// If no config file is found, it returns a zero config and nil error.
// If a config file is found but cannot be parsed, it returns an error.
func Load(dir string) (*ProjectConfig, error) {
	configPath, err := findConfigPath(dir)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		// No config file found, return zero config
		return &ProjectConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads the project configuration from the current working directory.
func LoadFromCurrentDir() (*ProjectConfig, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return Load(dir)
}

// findConfigPath searches for .sgex/config.yaml in dir and its parent directories.
// It returns the full path to the config file, or empty string if not found.
func findConfigPath(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	// Search upward through directory tree
	for {
		configPath := filepath.Join(absDir, ConfigPath)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parentDir := filepath.Dir(absDir)
		if parentDir == absDir {
			// Reached root without finding config
			return "", nil
		}
		absDir = parentDir
	}
}

// ResolveString returns the effective value for a string configuration field.
// Precedence: cliValue > configValue > defaultValue.
// Returns the effective value and its source ("cli", "config", or "default").
func (c *ProjectConfig) ResolveString(cliValue, configValue, defaultValue string) (string, string) {
	if cliValue != "" {
		return cliValue, "cli"
	}
	if configValue != "" {
		return configValue, "config"
	}
	return defaultValue, "default"
}

// EffectiveStateDir returns the state directory, defaulting to ~/.sgex
func (c *ProjectConfig) EffectiveStateDir() string {
	if c.StateDir != "" {
		return c.StateDir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".sgex")
	}
	return filepath.Join(homeDir, ".sgex")
}

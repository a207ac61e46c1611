// Package config manages patchgate configuration: compiled-in defaults,
// an optional per-repository TOML file, and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFile is the name of the optional per-repository config file,
// found by walking up from the working directory.
const ConfigFile = ".patchgate.toml"

// Compiled-in defaults, each overridable by file or environment.
const (
	DefaultNamespace      = "linux-bsp"
	DefaultMainlineBranch = "master"
	DefaultURLTemplate    = "https://gitlab.com/%s/%s.git"
	DefaultChecker        = "scripts/checkpatch.pl"
)

// Config represents the patchgate configuration.
type Config struct {
	Namespace      string   `toml:"namespace"`
	MainlineBranch string   `toml:"mainline_branch"`
	URLTemplate    string   `toml:"remote_url_template"`
	Checker        string   `toml:"checker_command"`
	CheckerArgs    []string `toml:"checker_args"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Namespace:      DefaultNamespace,
		MainlineBranch: DefaultMainlineBranch,
		URLTemplate:    DefaultURLTemplate,
		Checker:        DefaultChecker,
		CheckerArgs:    []string{"-g"},
	}
}

// Load builds the configuration for the given working directory:
// defaults, overlaid by the nearest config file walking up from dir,
// overlaid by PATCHGATE_* environment variables.
func Load(dir string) (*Config, error) {
	cfg := Default()

	if path, ok := findConfigFile(dir); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile walks up from dir looking for ConfigFile.
func findConfigFile(dir string) (string, bool) {
	for {
		path := filepath.Join(dir, ConfigFile)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// applyEnv overrides fields from the environment. Environment variables
// take precedence over both defaults and the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("PATCHGATE_NAMESPACE"); v != "" {
		c.Namespace = v
	}
	if v := os.Getenv("PATCHGATE_MAINLINE_BRANCH"); v != "" {
		c.MainlineBranch = v
	}
	if v := os.Getenv("PATCHGATE_URL_TEMPLATE"); v != "" {
		c.URLTemplate = v
	}
	if v := os.Getenv("PATCHGATE_CHECKER"); v != "" {
		c.Checker = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("namespace cannot be empty")
	}
	if c.MainlineBranch == "" {
		return fmt.Errorf("mainline_branch cannot be empty")
	}
	if c.Checker == "" {
		return fmt.Errorf("checker_command cannot be empty")
	}
	if n := strings.Count(c.URLTemplate, "%s"); n != 2 {
		return fmt.Errorf("remote_url_template must contain exactly two %%s slots (namespace, repository), got %d", n)
	}
	return nil
}

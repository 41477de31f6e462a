// Package config resolves the watchy runtime configuration: the snapshot root
// directory, an optional API token, and fetch pacing. Values come from an
// optional config file, overridden by environment variables, overridden in
// turn by CLI flags. The resolved Config is built once at startup and passed
// down explicitly.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRoot is the snapshot directory used when nothing overrides it.
	DefaultRoot = ".watchy"
	// DefaultSleepS is the default pause between per-repo stargazer fetches.
	DefaultSleepS = 0.1

	// EnvRoot overrides the snapshot root directory.
	EnvRoot = "WATCHY_DIR"
)

// Config holds the resolved runtime configuration.
type Config struct {
	Root   string  `yaml:"root"`
	Token  string  `yaml:"token"`
	SleepS float64 `yaml:"sleep_s"`
}

// New builds the configuration: defaults, then the first config file found,
// then environment overrides.
func New() (*Config, error) {
	cfg := defaults()

	if path, ok := Find(); ok {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if root := os.Getenv(EnvRoot); root != "" {
		cfg.Root = root
	}
	return cfg, nil
}

// Load reads and parses a config file, filling unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := defaults()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, unmarshalErr)
	}
	if cfg.Root == "" {
		cfg.Root = DefaultRoot
	}
	return cfg, nil
}

// Find searches the standard locations for a config file and returns the
// first match.
func Find() (string, bool) {
	locations := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, home, filepath.Join(home, ".config"))
	}

	patterns := []string{".watchy.yaml", ".watchy.yml", "watchy.yaml", "watchy.yml"}

	for _, loc := range locations {
		for _, pattern := range patterns {
			path := filepath.Join(loc, pattern)
			if _, statErr := os.Stat(path); statErr == nil {
				return path, true
			}
		}
	}
	return "", false
}

// SleepDuration converts the configured fetch pause to a time.Duration.
func (c *Config) SleepDuration() time.Duration {
	return time.Duration(c.SleepS * float64(time.Second))
}

// Validate checks for values that cannot work at all.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("snapshot root must not be empty")
	}
	if c.SleepS < 0 {
		return fmt.Errorf("sleep_s must not be negative, got %v", c.SleepS)
	}
	return nil
}

func defaults() *Config {
	return &Config{Root: DefaultRoot, SleepS: DefaultSleepS}
}

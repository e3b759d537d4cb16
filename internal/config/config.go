package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Region  string `json:"region"`
	Profile string `json:"profile"`

	Overscan    int   `json:"overscan"`
	ColumnWidth int   `json:"column_width"`
	MinWidth    int   `json:"min_width"`
	MaxWidth    int   `json:"max_width"`
	Frozen      int   `json:"frozen"`
	Limit       int   `json:"limit"`
	MaxBytes    int64 `json:"max_bytes"`

	LogFile  string `json:"log_file"`
	LogLevel string `json:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Region:      GetDefaultRegion(),
		Overscan:    2,
		ColumnWidth: 12,
		MinWidth:    3,
		MaxWidth:    40,
		MaxBytes:    256 << 20,
		LogLevel:    "info",
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lazygrid", "config.json"), nil
}

// LoadConfig loads the configuration from ~/.lazygrid/config.json and the
// environment.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(path)
}

// LoadConfigFrom loads the configuration from path. A missing file leaves
// the defaults in place.
func LoadConfigFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if profile, ok := os.LookupEnv("AWS_PROFILE"); ok {
		c.Profile = profile
	}
	if v, ok := os.LookupEnv("LAZYGRID_LOG_FILE"); ok {
		c.LogFile = v
	}
	if v, ok := os.LookupEnv("LAZYGRID_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"LAZYGRID_OVERSCAN", &c.Overscan},
		{"LAZYGRID_COLUMN_WIDTH", &c.ColumnWidth},
		{"LAZYGRID_FROZEN", &c.Frozen},
		{"LAZYGRID_LIMIT", &c.Limit},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks the configuration for values the grid cannot use.
func (c *Config) Validate() error {
	switch {
	case c.Overscan < 0:
		return fmt.Errorf("overscan must not be negative, got %d", c.Overscan)
	case c.ColumnWidth < 1:
		return fmt.Errorf("column width must be at least 1, got %d", c.ColumnWidth)
	case c.MinWidth < 1:
		return fmt.Errorf("minimum column width must be at least 1, got %d", c.MinWidth)
	case c.Frozen < 0:
		return fmt.Errorf("frozen column count must not be negative, got %d", c.Frozen)
	case c.Limit < 0:
		return fmt.Errorf("row limit must not be negative, got %d", c.Limit)
	}
	return nil
}

// GetDefaultRegion returns the default AWS region
func GetDefaultRegion() string {
	if region, ok := os.LookupEnv("AWS_REGION"); ok {
		return region
	}
	if region, ok := os.LookupEnv("AWS_DEFAULT_REGION"); ok {
		return region
	}
	return "us-east-1"
}

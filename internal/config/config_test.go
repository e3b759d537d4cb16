package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, 2, cfg.Overscan)
	assert.Equal(t, 12, cfg.ColumnWidth)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"overscan": 4, "frozen": 1, "log_file": "/tmp/a.log"}`), 0o600))
	t.Setenv("LAZYGRID_FROZEN", "3")
	t.Setenv("LAZYGRID_LOG_LEVEL", "debug")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Overscan)
	assert.Equal(t, 3, cfg.Frozen)
	assert.Equal(t, "/tmp/a.log", cfg.LogFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 12, cfg.ColumnWidth)
}

func TestLoadConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"overscan": `), 0o600))
	_, err := LoadConfigFrom(path)
	assert.Error(t, err)

	t.Setenv("LAZYGRID_OVERSCAN", "lots")
	_, err = LoadConfigFrom(filepath.Join(t.TempDir(), "none.json"))
	assert.ErrorContains(t, err, "LAZYGRID_OVERSCAN")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative overscan", func(c *Config) { c.Overscan = -1 }},
		{"zero column width", func(c *Config) { c.ColumnWidth = 0 }},
		{"zero min width", func(c *Config) { c.MinWidth = 0 }},
		{"negative frozen", func(c *Config) { c.Frozen = -2 }},
		{"negative limit", func(c *Config) { c.Limit = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

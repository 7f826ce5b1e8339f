package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 2, cfg.Pipeline.DecimalDigits)
	assert.Equal(t, "Snaffleflax", cfg.Pipeline.TrackedProduct)
	assert.Equal(t, Windows{2: {}, 3: {}}, cfg.Pipeline.SalesWindows)
	assert.Equal(t, Windows{2: {0.3, 0.7}, 3: {0.25, 0.25, 0.5}}, cfg.Pipeline.CRMWindows)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := `
pipeline:
  tracked_product: Globberin
  crm_windows:
    2: [0.5, 0.5]
paths:
  sales_dir: /srv/landing/sales
`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Globberin", cfg.Pipeline.TrackedProduct)
	// YAML merges into the default window map: size 2 is overridden, the
	// default size-3 spec stays.
	assert.Equal(t, []float64{0.5, 0.5}, cfg.Pipeline.CRMWindows[2])
	assert.Equal(t, []float64{0.25, 0.25, 0.5}, cfg.Pipeline.CRMWindows[3])
	assert.Equal(t, "/srv/landing/sales", cfg.Paths.SalesDir)
	// Untouched sections keep their defaults.
	assert.Equal(t, "sales_crm", cfg.Pipeline.Name)
	assert.Equal(t, 2, cfg.Pipeline.DecimalDigits)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SALESCRM_PIPELINE_TRACKED_PRODUCT", "Vorbulon")
	t.Setenv("SALESCRM_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Vorbulon", cfg.Pipeline.TrackedProduct)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"weight count mismatch", func(c *Config) { c.Pipeline.CRMWindows = Windows{3: {0.5, 0.5}} }},
		{"zero window size", func(c *Config) { c.Pipeline.SalesWindows = Windows{0: {}} }},
		{"unknown schema source", func(c *Config) { c.Schema.Source = "redis" }},
		{"file source without path", func(c *Config) { c.Schema.Source = "file" }},
		{"postgres source without dsn", func(c *Config) { c.Schema.Source = "postgres" }},
		{"missing tracked product", func(c *Config) { c.Pipeline.TrackedProduct = "" }},
		{"file logging without path", func(c *Config) { c.Logging.Output = "file"; c.Logging.FilePath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// Package config defines the pipeline's configuration: input/output paths,
// aggregation settings, schema source selection, logging and metrics. It is
// resolved once at process start (YAML file, then SALESCRM_* environment
// overrides) and passed down explicitly; nothing in the core reads
// configuration on its own.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// SALESCRM_LOGGING_LEVEL=debug.
const EnvPrefix = "SALESCRM"

// Config is the complete pipeline configuration.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
	Schema   SchemaConfig   `yaml:"schema" envconfig:"SCHEMA"`
	Metrics  MetricsConfig  `yaml:"metrics" envconfig:"METRICS"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig locates the pipeline's inputs and output.
type PathsConfig struct {
	SalesDir   string `yaml:"sales_dir" envconfig:"SALES_DIR" validate:"required"`
	CRMFile    string `yaml:"crm_file" envconfig:"CRM_FILE" validate:"required"`
	OutputFile string `yaml:"output_file" envconfig:"OUTPUT_FILE" validate:"required"`
}

// Windows maps a moving-window size in months to its weight sequence. An
// empty sequence means unweighted.
type Windows map[int][]float64

// PipelineConfig holds the aggregation settings.
type PipelineConfig struct {
	Name           string  `yaml:"name" envconfig:"NAME" validate:"required"`
	DecimalDigits  int     `yaml:"decimal_digits" envconfig:"DECIMAL_DIGITS" validate:"min=0,max=10"`
	TrackedProduct string  `yaml:"tracked_product" envconfig:"TRACKED_PRODUCT" validate:"required"`
	SalesWindows   Windows `yaml:"sales_windows"`
	CRMWindows     Windows `yaml:"crm_windows"`
}

// SchemaConfig selects where validation schemas come from.
type SchemaConfig struct {
	// Source is one of "reference" (built-in schemas), "file" (JSON file)
	// or "postgres".
	Source string `yaml:"source" envconfig:"SOURCE" validate:"oneof=reference file postgres"`
	File   string `yaml:"file" envconfig:"FILE"`
	DSN    string `yaml:"dsn" envconfig:"DSN"`
	Table  string `yaml:"table" envconfig:"TABLE"`
}

// MetricsConfig configures the optional Pushgateway. An empty URL disables
// pushing.
type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgateway_url" envconfig:"PUSHGATEWAY_URL"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/pipeline.log",
		},
		Paths: PathsConfig{
			SalesDir:   "data/landing/sales",
			CRMFile:    "data/landing/crm/crm_data.csv",
			OutputFile: "data/production/sales_crm/market_share_event_sum.csv",
		},
		Pipeline: PipelineConfig{
			Name:           "sales_crm",
			DecimalDigits:  2,
			TrackedProduct: "Snaffleflax",
			SalesWindows:   Windows{2: {}, 3: {}},
			CRMWindows:     Windows{2: {0.3, 0.7}, 3: {0.25, 0.25, 0.5}},
		},
		Schema: SchemaConfig{Source: "reference"},
	}
}

// Load builds the configuration: defaults, then the YAML file (if path is
// non-empty), then environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints and the window specifications.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if err := c.Pipeline.SalesWindows.validate(); err != nil {
		return fmt.Errorf("sales windows: %w", err)
	}
	if err := c.Pipeline.CRMWindows.validate(); err != nil {
		return fmt.Errorf("crm windows: %w", err)
	}
	if c.Schema.Source == "file" && c.Schema.File == "" {
		return fmt.Errorf("schema source %q requires schema.file", c.Schema.Source)
	}
	if c.Schema.Source == "postgres" && c.Schema.DSN == "" {
		return fmt.Errorf("schema source %q requires schema.dsn", c.Schema.Source)
	}
	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		return fmt.Errorf("logging output %q requires logging.file_path", c.Logging.Output)
	}
	return nil
}

func (w Windows) validate() error {
	for size, weights := range w {
		if size < 1 {
			return fmt.Errorf("window size %d: must be at least 1", size)
		}
		if len(weights) > 0 && len(weights) != size {
			return fmt.Errorf("window size %d: %d weights, want %d", size, len(weights), size)
		}
	}
	return nil
}

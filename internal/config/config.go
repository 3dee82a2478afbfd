// Package config loads the hcluster command configuration.
//
// Sources are layered with koanf, later layers overriding earlier ones:
//  1. Built-in defaults
//  2. An optional YAML file
//  3. HCLUSTER_* environment variables (HCLUSTER_LOGGING_LEVEL -> logging.level)
//  4. Command-line flags that were set explicitly
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/TrevorS/hcluster"
	"github.com/TrevorS/hcluster/internal/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "HCLUSTER_"

// Config is the full command configuration.
type Config struct {
	// Input is the dataset path; "" or "-" reads standard input.
	Input string `koanf:"input"`

	// Format is the dataset format: json, tsv or csv. Empty means infer from
	// the Input extension (.json, .csv, anything else tsv).
	Format string `koanf:"format"`

	// Transpose clusters columns (words) instead of rows (blogs).
	Transpose bool `koanf:"transpose"`

	// Metric names the distance metric, see hcluster.MetricNames.
	Metric string `koanf:"metric"`

	// Workers is the number of goroutines evaluating distances.
	Workers int `koanf:"workers"`

	// Threshold, when > 0, also prints flat clusters cut at this distance.
	Threshold float64 `koanf:"threshold"`

	// Output selects the encoding: text, json or linkage for the dendrogram,
	// or points for a 2D layout of the rows.
	Output string `koanf:"output"`

	// Iterations bounds the gradient descent of the points layout.
	Iterations int `koanf:"iterations"`

	// Seed seeds the starting positions of the points layout.
	Seed int64 `koanf:"seed"`

	Logging LoggingConfig `koanf:"logging"`
}

// LoggingConfig mirrors logging.Config for the fields that can be configured.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Metric:     "pearson",
		Workers:    1,
		Output:     "text",
		Iterations: 1000,
		Seed:       1,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration. path is an optional YAML file; overrides
// maps koanf keys (e.g. "logging.level") to values and wins over every other
// source.
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for key, val := range overrides {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if cfg.Format == "" {
		cfg.Format = inferFormat(cfg.Input)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envTransformFunc maps HCLUSTER_LOGGING_LEVEL to logging.level and
// HCLUSTER_METRIC to metric.
func envTransformFunc(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "logging_"); ok {
		return "logging." + rest
	}
	return key
}

func inferFormat(input string) string {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	default:
		return "tsv"
	}
}

// Validate checks every field and joins all problems into one error.
func (c *Config) Validate() error {
	var errs []error

	switch c.Format {
	case "json", "tsv", "csv":
	default:
		errs = append(errs, fmt.Errorf("format must be json, tsv or csv, got %q", c.Format))
	}
	if _, err := hcluster.MetricByName(c.Metric); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must be >= 0, got %v", c.Threshold))
	}
	switch c.Output {
	case "text", "json", "linkage", "points":
	default:
		errs = append(errs, fmt.Errorf("output must be text, json, linkage or points, got %q", c.Output))
	}
	if c.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("iterations must be > 0, got %d", c.Iterations))
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("log format must be json or console, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// Package config loads pipeline configuration for the omrscan CLI from a
// file and environment variables.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/tsawler/omrscan/scoring"
)

// Config holds the full configuration surface consumed at pipeline
// construction. Everything here is validated once, before any sheet is
// processed.
type Config struct {
	Grid      GridConfig      `mapstructure:"grid"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	Batch     BatchConfig     `mapstructure:"batch"`
}

// GridConfig fixes the sheet layout.
type GridConfig struct {
	Rows int `mapstructure:"rows"`
	Cols int `mapstructure:"cols"`
}

// ScoringConfig selects the answer key and credit policy.
type ScoringConfig struct {
	KeyFile string `mapstructure:"key_file"`
	Policy  string `mapstructure:"policy"`
}

// ExtractorConfig carries mark-detection tuning overrides. Negative
// values keep the extractor defaults.
type ExtractorConfig struct {
	FillThreshold  float64 `mapstructure:"fill_threshold"`
	InsetRatio     float64 `mapstructure:"inset_ratio"`
	MinCircularity float64 `mapstructure:"min_circularity"`
}

// BatchConfig controls batch processing.
type BatchConfig struct {
	Workers int    `mapstructure:"workers"`
	Output  string `mapstructure:"output"`
}

// Load reads configuration from the given file (optional; empty path
// skips it) and from OMRSCAN_* environment variables, applying defaults
// for anything unset.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("grid.rows", 20)
	v.SetDefault("grid.cols", 5)
	v.SetDefault("scoring.policy", "strict")
	v.SetDefault("extractor.fill_threshold", -1.0)
	v.SetDefault("extractor.inset_ratio", -1.0)
	v.SetDefault("extractor.min_circularity", -1.0)
	v.SetDefault("batch.workers", runtime.NumCPU())
	v.SetDefault("batch.output", "omr_results.csv")

	v.SetEnvPrefix("OMRSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values that would fail every
// sheet identically.
func (c *Config) Validate() error {
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		return fmt.Errorf("config: invalid grid %dx%d", c.Grid.Rows, c.Grid.Cols)
	}
	if _, err := scoring.ParsePolicy(c.Scoring.Policy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("config: workers must be at least 1")
	}
	return nil
}

// PolicyValue returns the parsed credit policy. Call Validate first.
func (c *Config) PolicyValue() scoring.Policy {
	p, _ := scoring.ParsePolicy(c.Scoring.Policy)
	return p
}

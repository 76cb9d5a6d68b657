// Package config provides configuration types and defaults for ebi.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for ebi.
type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Tracing TracingConfig `mapstructure:"tracing" yaml:"tracing"`
	Manual  ManualConfig  `mapstructure:"manual" yaml:"manual"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
}

// LogConfig controls the debug log. The log is only written when debug
// mode is on (--debug or EBI_DEBUG).
type LogConfig struct {
	// Level is the minimum level written: "debug", "info", "warn" or "error".
	Level string `mapstructure:"level" yaml:"level"`

	// File receives the log. Empty means standard error.
	File string `mapstructure:"file" yaml:"file"`
}

// TracingConfig holds distributed tracing configuration for input resolution.
type TracingConfig struct {
	// Enabled controls whether resolution calls are traced.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/ebi/traces/traces.jsonl
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`
}

// ManualConfig controls `ebi itself manual`.
type ManualConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style" yaml:"markdown_style"` // "dark" (default), "light" or "notty"
	Width         int    `mapstructure:"width" yaml:"width"`                   // word wrap width of the rendered manual
}

// CacheConfig controls memoisation of command lookups.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/ebi/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ebi", "traces", "traces.jsonl")
}

// DefaultConfigPath returns the user-level config file,
// ~/.config/ebi/config.yaml, or empty string if home dir unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ebi", "config.yaml")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			Level: "debug",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from the home directory at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Manual: ManualConfig{
			MarkdownStyle: "dark",
			Width:         100,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
	}
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateLog(c.Log); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	if err := ValidateManual(c.Manual); err != nil {
		return err
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// ValidateLog checks log configuration for errors.
func ValidateLog(l LogConfig) error {
	switch l.Level {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("log.level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", l.Level)
	}
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}

	return nil
}

// ValidateManual checks manual rendering configuration for errors.
func ValidateManual(m ManualConfig) error {
	switch m.MarkdownStyle {
	case "", "dark", "light", "notty":
	default:
		return fmt.Errorf("manual.markdown_style must be \"dark\", \"light\", or \"notty\", got %q", m.MarkdownStyle)
	}
	if m.Width < 0 {
		return fmt.Errorf("manual.width must not be negative, got %d", m.Width)
	}
	return nil
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return out, nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Ebi Configuration

# Debug log, written only with --debug or EBI_DEBUG=1
log:
  level: debug       # "debug", "info", "warn" or "error"
  # file: ebi.log    # default: standard error, or $EBI_LOG

# Tracing of input resolution: one span per file read, one event per importer attempt
tracing:
  enabled: false
  exporter: file     # "none", "file", "stdout" or "otlp"
  # file_path: ~/.config/ebi/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

# Rendering of 'ebi itself manual'
manual:
  markdown_style: dark   # "dark", "light" or "notty"
  width: 100

# Memoisation of command lookups while generating documentation
cache:
  enabled: true
  ttl: 10m
`
}

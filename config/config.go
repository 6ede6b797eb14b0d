// Package config provides configuration loading for scopemetrics.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the complete scopemetrics configuration.
type Config struct {
	Log      LogConfig        `yaml:"log"`
	Analyses []AnalysisConfig `yaml:"analyses"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn or error.
	Level string `yaml:"level"`
}

// AnalysisConfig pre-configures one analysis: which registry it lives in
// and metadata values bound before every run.
type AnalysisConfig struct {
	// Name is the registered analysis name.
	Name string `yaml:"name"`
	// Level is the analysis category: image, dataset or progression.
	Level string `yaml:"level"`
	// Metadata holds values bound to metadata requirements at run time.
	Metadata map[string]any `yaml:"metadata"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	for i, a := range c.Analyses {
		if a.Name == "" {
			return fmt.Errorf("analyses[%d]: name is required", i)
		}
		switch a.Level {
		case "image", "dataset", "progression":
		default:
			return fmt.Errorf("analyses[%d]: unknown level %q", i, a.Level)
		}
	}
	return nil
}

// Analysis returns the pre-configured entry for a name, if any.
func (c *Config) Analysis(name string) (AnalysisConfig, bool) {
	for _, a := range c.Analyses {
		if a.Name == name {
			return a, true
		}
	}
	return AnalysisConfig{}, false
}

// ParseLevel converts a config log level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// LoadFromFile loads configuration from a YAML file, applying defaults for
// unset fields.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

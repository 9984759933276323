package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all questionnaire tool configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Forest   ForestConfig   `yaml:"forest"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig locates the coded-value store.
type DatabaseConfig struct {
	Path string `yaml:"path"` // empty = discover .questionnaire.db
}

// ForestConfig bounds reconstruction batches.
type ForestConfig struct {
	MaxRecords int `yaml:"max_records"` // 0 = unbounded
}

// ExportConfig configures bulk export.
type ExportConfig struct {
	Concurrency int    `yaml:"concurrency"`
	OutputDir   string `yaml:"output_dir"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Forest: ForestConfig{
			MaxRecords: 50000,
		},
		Export: ExportConfig{
			Concurrency: 4,
			OutputDir:   "export",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	if c.Forest.MaxRecords < 0 {
		return fmt.Errorf("forest.max_records must be >= 0, got %d", c.Forest.MaxRecords)
	}
	if c.Export.Concurrency < 1 {
		return fmt.Errorf("export.concurrency must be >= 1, got %d", c.Export.Concurrency)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if path := os.Getenv("QUESTIONNAIRE_DB"); path != "" {
		c.Database.Path = path
	}
	if level := os.Getenv("QUESTIONNAIRE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if raw := os.Getenv("QUESTIONNAIRE_MAX_RECORDS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("QUESTIONNAIRE_MAX_RECORDS: %w", err)
		}
		c.Forest.MaxRecords = n
	}
	return nil
}

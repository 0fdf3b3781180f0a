// Package config provides configuration loading and structs for the wordlist tools.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the CLI and the HTTP server.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Check  CheckConfig  `yaml:"check"`
	Server ServerConfig `yaml:"server"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
	File  string `yaml:"file"`
}

// CheckConfig holds the wordlist rules.
type CheckConfig struct {
	RejectDuplicates     bool  `yaml:"reject_duplicates"`
	UnicodeNormalization *bool `yaml:"unicode_normalization"`
	ChunkSize            int   `yaml:"chunk_size"`
}

// UnicodeNormalizationOrDefault returns whether words are NFC-normalized; defaults to true when unset.
func (c *CheckConfig) UnicodeNormalizationOrDefault() bool {
	if c.UnicodeNormalization != nil {
		return *c.UnicodeNormalization
	}
	return true
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	MaxRequestSize int           `yaml:"max_request_size"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// Address returns host:port.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns a config with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Load reads and parses the config file at path and applies defaults.
// An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	if c.Check.ChunkSize < 0 {
		return fmt.Errorf("check.chunk_size: must not be negative, got %d", c.Check.ChunkSize)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port: out of range: %d", c.Server.Port)
	}
	return nil
}

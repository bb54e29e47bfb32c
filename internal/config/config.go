// Package config loads the YAML configuration shared by the server and the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all service configuration.
type Config struct {
	Model   ModelConfig   `yaml:"model"`
	Lexicon LexiconConfig `yaml:"lexicon"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Warmup  WarmupConfig  `yaml:"warmup"`
}

// ModelConfig locates the classifier artifact.
type ModelConfig struct {
	Path string `yaml:"path"`
}

// LexiconConfig selects the stopword corpus and lemmatizer.
type LexiconConfig struct {
	StopwordsFile   string `yaml:"stopwords_file"`
	StopwordLibrary bool   `yaml:"stopword_library"`
	Language        string `yaml:"language"`
	Lemmatizer      string `yaml:"lemmatizer"` // golem, none
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port           int    `yaml:"port"`
	ReadTimeout    string `yaml:"read_timeout"`
	WriteTimeout   string `yaml:"write_timeout"`
	MaxRequestSize int    `yaml:"max_request_size"`
	MaxBatchSize   int    `yaml:"max_batch_size"`
	Concurrency    int    `yaml:"concurrency"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	File string `yaml:"file"`
	JSON bool   `yaml:"json"`
}

// WarmupConfig configures warmup on startup.
type WarmupConfig struct {
	Enabled     bool `yaml:"enabled"`
	Iterations  int  `yaml:"iterations"`
	Concurrency int  `yaml:"concurrency"`
}

// Default timeouts used when the configured value is empty or unparsable.
const (
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Path: "models/sentiment.json",
		},
		Lexicon: LexiconConfig{
			Language:   "en",
			Lemmatizer: "golem",
		},
		Server: ServerConfig{
			Port:           8080,
			ReadTimeout:    "10s",
			WriteTimeout:   "10s",
			MaxRequestSize: 4 * 1024 * 1024,
			MaxBatchSize:   1000,
			Concurrency:    256 * 1024,
		},
		Logging: LoggingConfig{
			JSON: true,
		},
		Warmup: WarmupConfig{
			Enabled:     false,
			Iterations:  100,
			Concurrency: runtime.NumCPU(),
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SENTIMENT_MODEL_PATH"); v != "" {
		c.Model.Path = v
	}
	if v := os.Getenv("SENTIMENT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("SENTIMENT_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("SENTIMENT_STOPWORDS_FILE"); v != "" {
		c.Lexicon.StopwordsFile = v
	}
}

// ReadTimeout returns the server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, DefaultReadTimeout)
}

// WriteTimeout returns the server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, DefaultWriteTimeout)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return fallback
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Model.Path == "" {
		return errors.New("model.path is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("server.port must be between 1 and 65535")
	}
	if c.Server.MaxBatchSize < 1 {
		return errors.New("server.max_batch_size must be positive")
	}
	if c.Server.MaxRequestSize < 1 {
		return errors.New("server.max_request_size must be positive")
	}
	switch c.Lexicon.Lemmatizer {
	case "", "golem", "none":
	default:
		return fmt.Errorf("lexicon.lemmatizer %q is not one of golem, none", c.Lexicon.Lemmatizer)
	}
	if c.Warmup.Iterations < 0 || c.Warmup.Concurrency < 0 {
		return errors.New("warmup.iterations and warmup.concurrency must not be negative")
	}
	return nil
}

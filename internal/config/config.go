// Package config loads xivquote settings from config.yaml, an optional .env
// file and XIVQUOTE_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/justadataconstruct/xivquote/internal/logging"
	"github.com/justadataconstruct/xivquote/internal/lore"
)

// File names inside the config directory.
const (
	configFileName = "config.yaml"
	envFileName    = ".env"
)

// Environment variables that override config.yaml.
const (
	EnvHome         = "XIVQUOTE_HOME"
	EnvLoreEndpoint = "XIVQUOTE_LORE_ENDPOINT"
	EnvLoreTimeout  = "XIVQUOTE_LORE_TIMEOUT"
	EnvCacheDir     = "XIVQUOTE_CACHE_DIR"
	EnvLogLevel     = "XIVQUOTE_LOG_LEVEL"
	EnvLogFormat    = "XIVQUOTE_LOG_FORMAT"
	EnvLogFile      = "XIVQUOTE_LOG_FILE"
	EnvNoColor      = "NO_COLOR"
)

// Config is the full xivquote configuration.
type Config struct {
	Lore    LoreConfig    `yaml:"lore"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoreConfig configures the lore API client.
type LoreConfig struct {
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds each request; zero leaves the HTTP transport default.
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig configures where the category counts cache lives.
type CacheConfig struct {
	// Dir replaces the platform user cache directory as the cache root.
	Dir string `yaml:"dir"`
}

// OutputConfig controls how the quote is printed.
type OutputConfig struct {
	// Style enables dim + italic rendering on terminals.
	Style bool `yaml:"style"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Lore:   LoreConfig{Endpoint: lore.DefaultEndpoint},
		Output: OutputConfig{Style: true},
		Logging: LoggingConfig{
			Level:  logging.DefaultLevel,
			Format: logging.FormatConsole,
		},
	}
}

// Load reads configuration from dir. A missing config.yaml or .env is not an
// error. If dir is empty, GetConfigDir is used.
func Load(dir string) (*Config, error) {
	if dir == "" {
		var err error
		dir, err = GetConfigDir()
		if err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(filepath.Join(dir, envFileName)); err != nil {
		return nil, err
	}

	cfg := New()
	if err := cfg.loadFile(filepath.Join(dir, configFileName)); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvLoreEndpoint); v != "" {
		c.Lore.Endpoint = v
	}
	if v := os.Getenv(EnvLoreTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvLoreTimeout, v, err)
		}
		c.Lore.Timeout = d
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	// https://no-color.org: any non-empty value disables styling.
	if v := os.Getenv(EnvNoColor); v != "" {
		if b, err := strconv.ParseBool(v); err != nil || b {
			c.Output.Style = false
		}
	}
	return nil
}

// Validate checks the configuration for values the rest of the program cannot use.
func (c *Config) Validate() error {
	if c.Lore.Endpoint == "" {
		return errors.New("lore.endpoint must not be empty")
	}
	u, err := url.Parse(c.Lore.Endpoint)
	if err != nil {
		return fmt.Errorf("lore.endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("lore.endpoint must be an http(s) URL, got %q", c.Lore.Endpoint)
	}
	if c.Lore.Timeout < 0 {
		return fmt.Errorf("lore.timeout must be >= 0, got %s", c.Lore.Timeout)
	}
	switch c.Logging.Format {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q",
			logging.FormatConsole, logging.FormatJSON, c.Logging.Format)
	}
	return nil
}

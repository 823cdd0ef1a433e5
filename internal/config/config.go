// Package config loads compare.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/compare/internal/compare"
)

const DefaultPath = "compare.yaml"

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Limit      int           `yaml:"limit"`
	CompareURL string        `yaml:"compare_url"`
	Storage    StorageConfig `yaml:"storage"`
	Log        LogConfig     `yaml:"log"`
	UI         UIConfig      `yaml:"ui"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	// Directory for the file backend, database file for sqlite.
	Path string `yaml:"path"`
	Key  string `yaml:"key"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type UIConfig struct {
	Theme   string `yaml:"theme"`
	NoColor bool   `yaml:"no_color"`
}

func Default() *Config {
	return &Config{
		Limit:      compare.DefaultLimit,
		CompareURL: compare.DefaultURL,
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    ".",
			Key:     compare.DefaultKey,
		},
		Log: LogConfig{Level: "warn"},
		UI:  UIConfig{Theme: "classic"},
	}
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := strings.TrimSpace(os.Getenv("COMPARE_LIMIT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("COMPARE_LIMIT: not a number: %s", v)
		}
		c.Limit = n
	}
	if v := strings.TrimSpace(os.Getenv("COMPARE_STORAGE_BACKEND")); v != "" {
		c.Storage.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("COMPARE_STORAGE_PATH")); v != "" {
		c.Storage.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("COMPARE_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.NoColor = true
	}
	return nil
}

// Validate fills empty fields with defaults and rejects bad values.
func (c *Config) Validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	if c.CompareURL == "" {
		c.CompareURL = compare.DefaultURL
	}

	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	switch c.Storage.Backend {
	case "":
		c.Storage.Backend = BackendFile
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid storage backend: %s (must be file, sqlite, or memory)", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "."
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.Path == "." {
		c.Storage.Path = "compare.db"
	}
	if c.Storage.Key == "" {
		c.Storage.Key = compare.DefaultKey
	}

	switch c.Log.Level {
	case "":
		c.Log.Level = "warn"
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.UI.Theme == "" {
		c.UI.Theme = "classic"
	}
	return nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(b), nil
}

// Package config resolves hagios settings from a YAML file, a .env file and
// HAGIOS_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings.
type Config struct {
	// Content is a local directory or an http(s) base URL holding
	// modulos.json and the per-module documents.
	Content string `yaml:"content" validate:"required"`

	// DBPath overrides the SQLite database location. Empty means the
	// default under the data directory.
	DBPath string `yaml:"db"`

	// UserID identifies the learner for remote sync. Empty disables sync.
	UserID string `yaml:"user" validate:"omitempty,max=128"`

	Redis RedisConfig `yaml:"redis"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// LogFile receives logs while the TUI owns the terminal. Empty means
	// hagios.log under the data directory.
	LogFile string `yaml:"log_file"`
}

// RedisConfig locates the remote sync server.
type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0,lte=15"`
}

// Enabled reports whether a Redis server is configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Content:  "dados",
		LogLevel: "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hagios/config.yaml, falling back to
// ~/.config/hagios/config.yaml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "hagios", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "hagios", "config.yaml")
	}
	return filepath.Join(home, ".config", "hagios", "config.yaml")
}

// Load builds the configuration. When path is empty the default path is
// tried and silently skipped if absent; an explicit path must exist.
// A .env file in the working directory is loaded when present; it never
// overrides variables already set in the environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from HAGIOS_* variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("HAGIOS_CONTENT"); v != "" {
		c.Content = v
	}
	if v := os.Getenv("HAGIOS_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("HAGIOS_USER"); v != "" {
		c.UserID = v
	}
	if v := os.Getenv("HAGIOS_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("HAGIOS_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("HAGIOS_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HAGIOS_REDIS_DB: %w", err)
		}
		c.Redis.DB = n
	}
	if v := os.Getenv("HAGIOS_LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SyncEnabled reports whether remote sync has both a server and a user.
func (c Config) SyncEnabled() bool {
	return c.Redis.Enabled() && c.UserID != ""
}

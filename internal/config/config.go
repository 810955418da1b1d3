package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/4wadia/focusflow/internal/config/colors"
	"gopkg.in/yaml.v3"
)

// Lock backends
const (
	LockMemory = "memory"
	LockRedis  = "redis"
)

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig     `yaml:"database"`
	Server      ServerConfig       `yaml:"server"`
	Auth        AuthConfig         `yaml:"auth"`
	Lock        LockConfig         `yaml:"lock"`
	Mutation    MutationConfig     `yaml:"mutation"`
	Log         LogConfig          `yaml:"log"`
	CLI         CLIConfig          `yaml:"cli"`
	ColorScheme colors.ColorScheme `yaml:"theme"`
}

type DatabaseConfig struct {
	// Path of the SQLite file; empty means ~/.focusflow/focusflow.db
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Listen         string   `yaml:"listen"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type AuthConfig struct {
	// JWTSecret signs HS256 bearer tokens; the API refuses to start without it
	JWTSecret string `yaml:"jwt_secret"`
}

type LockConfig struct {
	Backend  string        `yaml:"backend"`
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
}

type MutationConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type CLIConfig struct {
	// Owner is the owner ID the local CLI acts as
	Owner string `yaml:"owner"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads config from $FOCUSFLOW_CONFIG or the user's config directory.
// Returns default config if file doesn't exist. Environment overrides are
// applied last.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from an explicit path. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o600)
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	switch c.Lock.Backend {
	case LockMemory:
	case LockRedis:
		if c.Lock.RedisURL == "" {
			return errors.New("lock.redis_url is required when lock.backend is redis")
		}
	default:
		return fmt.Errorf("unknown lock.backend %q (want %s or %s)", c.Lock.Backend, LockMemory, LockRedis)
	}
	if c.Lock.TTL <= 0 {
		return errors.New("lock.ttl must be positive")
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if path := os.Getenv("FOCUSFLOW_CONFIG"); path != "" {
		return path, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "focusflow", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "focusflow", "config.yaml"), nil
}

// applyEnv overrides file values with FOCUSFLOW_* environment variables
func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&c.Database.Path, "FOCUSFLOW_DB_PATH")
	override(&c.Server.Listen, "FOCUSFLOW_LISTEN")
	override(&c.Auth.JWTSecret, "FOCUSFLOW_JWT_SECRET")
	override(&c.Log.Level, "FOCUSFLOW_LOG_LEVEL")
	override(&c.CLI.Owner, "FOCUSFLOW_OWNER")

	if url := os.Getenv("FOCUSFLOW_REDIS_URL"); url != "" {
		c.Lock.RedisURL = url
		if c.Lock.Backend == "" {
			c.Lock.Backend = LockRedis
		}
	}
	if v := os.Getenv("FOCUSFLOW_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Mutation.MaxAttempts = n
		}
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":3000"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if c.Lock.Backend == "" {
		c.Lock.Backend = LockMemory
	}
	if c.Lock.TTL == 0 {
		c.Lock.TTL = 10 * time.Second
	}
	if c.Mutation.MaxAttempts < 1 {
		c.Mutation.MaxAttempts = 3
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.CLI.Owner == "" {
		c.CLI.Owner = "local"
	}
	c.ColorScheme.ApplyDefaults()
}

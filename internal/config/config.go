// ABOUTME: Aurofit configuration management with backend selection.
// ABOUTME: Reads config.json, applies AUROFIT_* environment overrides, and opens the store.

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harperreed/aurofit/internal/kv"
	"github.com/joho/godotenv"
)

// Backend names accepted in Config.Backend.
const (
	BackendBadger = "badger"
	BackendCharm  = "charm"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config stores aurofit configuration.
type Config struct {
	// Backend selects the storage backend: "badger" (default), "charm", "sqlite", or "redis".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data. Badger keeps its files in
	// DataDir/badger and SQLite uses DataDir/aurofit.db.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/aurofit.
	DataDir string `json:"data_dir,omitempty"`

	RedisAddr     string `json:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty"`

	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `json:"log_level,omitempty"`

	// ListenAddr is the HTTP API address used by `aurofit serve`.
	ListenAddr string `json:"listen_addr,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "badger".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendBadger
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DefaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetRedisAddr returns the Redis address, defaulting to localhost.
func (c *Config) GetRedisAddr() string {
	if c.RedisAddr == "" {
		return "localhost:6379"
	}
	return c.RedisAddr
}

// GetLogLevel returns the configured log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// GetListenAddr returns the HTTP listen address, defaulting to :8080.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return ":8080"
	}
	return c.ListenAddr
}

// DefaultDataDir returns $XDG_DATA_HOME/aurofit or ~/.local/share/aurofit.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "aurofit")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStore opens the key-value store for the configured backend.
func (c *Config) OpenStore(ctx context.Context) (kv.Store, error) {
	return c.OpenBackend(ctx, c.GetBackend())
}

// OpenBackend opens the named backend using this config's paths and addresses.
func (c *Config) OpenBackend(ctx context.Context, backend string) (kv.Store, error) {
	dataDir := c.GetDataDir()

	var (
		store kv.Store
		err   error
	)
	switch backend {
	case BackendBadger:
		store, err = kv.OpenBadger(filepath.Join(dataDir, "badger"))
	case BackendSQLite:
		store, err = kv.OpenSQLite(filepath.Join(dataDir, "aurofit.db"))
	case BackendCharm:
		store, err = kv.OpenCharm()
	case BackendRedis:
		store, err = kv.OpenRedis(ctx, kv.RedisOptions{
			Addr:     c.GetRedisAddr(),
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", backend, err)
	}
	return store, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "aurofit", "config.json")
}

// Load reads config from disk, then applies a .env file in the working
// directory (if any) and AUROFIT_* environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := LoadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFile reads a config file without applying environment overrides.
// A missing file yields an empty Config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyEnv overrides fields from AUROFIT_* environment variables.
func (c *Config) ApplyEnv() {
	c.Backend = getEnv("AUROFIT_BACKEND", c.Backend)
	c.DataDir = getEnv("AUROFIT_DATA_DIR", c.DataDir)
	c.RedisAddr = getEnv("AUROFIT_REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = getEnv("AUROFIT_REDIS_PASSWORD", c.RedisPassword)
	c.RedisDB = getEnvAsInt("AUROFIT_REDIS_DB", c.RedisDB)
	c.LogLevel = getEnv("AUROFIT_LOG_LEVEL", c.LogLevel)
	c.ListenAddr = getEnv("AUROFIT_LISTEN_ADDR", c.ListenAddr)
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

// Set updates the field named by its JSON key. Values are validated where a
// bad one would only fail later when opening the store.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		switch strings.ToLower(value) {
		case BackendBadger, BackendCharm, BackendSQLite, BackendRedis:
			c.Backend = strings.ToLower(value)
		default:
			return fmt.Errorf("unknown backend: %q", value)
		}
	case "data_dir":
		c.DataDir = value
	case "redis_addr":
		c.RedisAddr = value
	case "redis_password":
		c.RedisPassword = value
	case "redis_db":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("redis_db must be a non-negative integer")
		}
		c.RedisDB = n
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(value)
		default:
			return fmt.Errorf("unknown log level: %q", value)
		}
	case "listen_addr":
		c.ListenAddr = value
	default:
		return fmt.Errorf("unknown config key: %q", key)
	}
	return nil
}

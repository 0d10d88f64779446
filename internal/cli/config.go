package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fsgraph/pkg/scan"
)

// Config holds settings loaded from the TOML config file. Command-line
// flags override anything set here.
type Config struct {
	Scan   ScanConfig   `toml:"scan"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
}

// ScanConfig holds default scan options.
type ScanConfig struct {
	MaxDepth       int      `toml:"max_depth"`
	IncludeHidden  bool     `toml:"include_hidden"`
	FollowSymlinks bool     `toml:"follow_symlinks"`
	Gitignore      bool     `toml:"gitignore"`
	Ignore         []string `toml:"ignore"`
}

// CacheConfig selects the scan cache backend.
type CacheConfig struct {
	// Backend is "file", "redis", or "none".
	Backend string `toml:"backend"`
	// TTLMinutes is how long cached scan results stay valid.
	TTLMinutes int `toml:"ttl_minutes"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects the snapshot store backend used by serve.
type StoreConfig struct {
	// Backend is "memory" or "mongo".
	Backend string `toml:"backend"`

	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// defaultConfig returns the configuration used when no file is present.
func defaultConfig() Config {
	return Config{
		Scan: ScanConfig{
			MaxDepth:  scan.DefaultMaxDepth,
			Gitignore: true,
		},
		Cache: CacheConfig{
			Backend:    "file",
			TTLMinutes: 15,
			Redis:      RedisConfig{Addr: "localhost:6379"},
		},
		Store: StoreConfig{
			Backend:  "memory",
			MongoURI: "mongodb://localhost:27017",
			Database: "fsgraph",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// defaultConfigPath returns ~/.config/fsgraph/config.toml, honoring
// XDG_CONFIG_HOME when set.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing file at the default location is not an error;
// an explicitly named file must exist.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// configKey is the context key for storing the loaded config.
const configKey ctxKey = 1

// withConfig returns a new context with the config attached.
func withConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext retrieves the config from ctx, falling back to
// defaults if none is attached.
func configFromContext(ctx context.Context) Config {
	if cfg, ok := ctx.Value(configKey).(Config); ok {
		return cfg
	}
	return defaultConfig()
}

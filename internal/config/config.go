// Package config loads the termrain configuration file.
//
// Configuration lives in a TOML file (default ~/.config/termrain/config.toml)
// and covers the external collaborators: the corpus database, the sentiment
// classifier, the projection service, the cache backend, and the HTTP server.
// Every field has a working default so a missing file is not an error; CLI
// flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/outlooklabs/termrain/pkg/errors"
	"github.com/outlooklabs/termrain/pkg/rain"
)

// Cache backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full application configuration.
type Config struct {
	Corpus    CorpusConfig    `toml:"corpus"`
	Sentiment SentimentConfig `toml:"sentiment"`
	Semantic  SemanticConfig  `toml:"semantic"`
	Cache     CacheConfig     `toml:"cache"`
	Canvas    CanvasConfig    `toml:"canvas"`
	Server    ServerConfig    `toml:"server"`
}

// CorpusConfig locates the outlook document store.
type CorpusConfig struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// SentimentConfig wires the classifier and the persistent sentiment cache.
// An empty ClassifierURL disables the classifier tier.
type SentimentConfig struct {
	ClassifierURL   string `toml:"classifier_url"`
	ClassifierToken string `toml:"classifier_token"`
	Collection      string `toml:"collection"`
}

// SemanticConfig wires the projection service. An empty URL means the
// deterministic fallback positions are always used.
type SemanticConfig struct {
	ProjectionURL string `toml:"projection_url"`
}

// CacheConfig selects and configures the result cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"` // file, redis, or none
	Dir       string `toml:"dir"`     // file backend root (default per-user cache dir)
	RedisAddr string `toml:"redis_addr"`
	Scope     string `toml:"scope"` // key prefix when deployments share one Redis
}

// CanvasConfig holds default layout dimensions.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Seed   int64   `toml:"seed"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Corpus: CorpusConfig{
			MongoURI:   "mongodb://localhost:27017",
			Database:   "termrain",
			Collection: "outlooks",
		},
		Sentiment: SentimentConfig{
			Collection: "sentiment",
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
		},
		Canvas: CanvasConfig{
			Width:  rain.DefaultWidth,
			Height: rain.DefaultHeight,
			Seed:   rain.DefaultSeed,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "termrain", "config.toml"), nil
}

// Load reads the TOML file at path, layered over the defaults. A missing
// file yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

// validate rejects values that would fail at first use with a worse message.
func (c *Config) validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("config: unknown cache backend %q", c.Cache.Backend)
	}
	if c.Canvas.Width < 0 || c.Canvas.Height < 0 {
		return fmt.Errorf("config: canvas dimensions must be positive")
	}
	if c.Sentiment.ClassifierURL != "" {
		if err := errors.ValidateURL(c.Sentiment.ClassifierURL); err != nil {
			return fmt.Errorf("config: classifier_url: %w", err)
		}
	}
	if c.Semantic.ProjectionURL != "" {
		if err := errors.ValidateURL(c.Semantic.ProjectionURL); err != nil {
			return fmt.Errorf("config: projection_url: %w", err)
		}
	}
	return nil
}

// CacheDir returns the file-cache root, falling back to the per-user cache
// directory when unset.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	return filepath.Join(dir, "termrain"), nil
}

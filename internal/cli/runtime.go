package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/outlooklabs/termrain/internal/config"
	"github.com/outlooklabs/termrain/pkg/cache"
	"github.com/outlooklabs/termrain/pkg/corpus"
	"github.com/outlooklabs/termrain/pkg/pipeline"
	"github.com/outlooklabs/termrain/pkg/semantic"
	"github.com/outlooklabs/termrain/pkg/sentiment"
)

// loadConfig reads the config file from the --config flag path, or the
// default location when the flag is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Default(), err
		}
	}
	return config.Load(path)
}

// newCache builds the configured cache backend.
func newCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		c, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return c, nil
	case config.BackendNone:
		return cache.NewNullCache(), nil
	default:
		dir, err := cfg.CacheDir()
		if err != nil {
			return nil, err
		}
		c, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, fmt.Errorf("open cache dir: %w", err)
		}
		return c, nil
	}
}

// newKeyer builds the cache keyer. A configured scope prefixes every key so
// several deployments (staging and production, say) can share one Redis.
func newKeyer(cfg config.Config) cache.Keyer {
	keyer := cache.NewDefaultKeyer()
	if cfg.Cache.Scope != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Cache.Scope)
	}
	return keyer
}

// buildRunner wires a pipeline runner from the configuration: corpus source,
// cache backend, sentiment cascade, and projection client. The caller owns
// the runner and must Close it.
func buildRunner(ctx context.Context, cfg config.Config, logger *log.Logger) (*pipeline.Runner, error) {
	c, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	source, err := corpus.NewMongoSource(ctx, cfg.Corpus.MongoURI, cfg.Corpus.Database, cfg.Corpus.Collection)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("open corpus: %w", err)
	}

	var store sentiment.Store
	if s, err := sentiment.NewMongoStore(ctx, cfg.Corpus.MongoURI, cfg.Corpus.Database, cfg.Sentiment.Collection); err != nil {
		logger.Warn("sentiment store unavailable, cascade runs without it", "err", err)
	} else {
		store = s
	}

	var classifier *sentiment.Classifier
	if cfg.Sentiment.ClassifierURL != "" {
		classifier = sentiment.NewClassifier(cfg.Sentiment.ClassifierURL,
			sentiment.WithToken(cfg.Sentiment.ClassifierToken))
	}

	var positioner *semantic.Positioner
	if cfg.Semantic.ProjectionURL != "" {
		positioner = semantic.NewPositioner(cfg.Semantic.ProjectionURL, semantic.WithLogger(logger))
	}

	resolver := sentiment.NewResolver(sentiment.Config{
		Store:      store,
		Classifier: classifier,
		Logger:     logger,
	})

	return pipeline.NewRunner(pipeline.Deps{
		Cache:      c,
		Keyer:      newKeyer(cfg),
		Logger:     logger,
		Source:     source,
		Resolver:   resolver,
		Positioner: positioner,
	}), nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"

	"github.com/wordgrove/wordgrove/pkg/cache"
	"github.com/wordgrove/wordgrove/pkg/store"
)

// =============================================================================
// Server Configuration
// =============================================================================

// ServeConfig is the on-disk configuration for the serve command, read from
// ~/.config/wordgrove/config.toml. Every field has a working default so the
// file is optional.
type ServeConfig struct {
	Addr  string      `toml:"addr"`
	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// CacheConfig selects the cache backend for the server.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Defaults to the CLI cache directory.
	Dir string `toml:"dir"`

	// URL is the redis connection URL, e.g. "redis://localhost:6379/0".
	URL string `toml:"url"`
}

// StoreConfig selects the layout store backend for the server.
type StoreConfig struct {
	// Backend is one of "memory" or "mongo".
	Backend string `toml:"backend"`

	// URI is the mongo connection URI, e.g. "mongodb://localhost:27017".
	URI string `toml:"uri"`

	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// defaultServeConfig returns the configuration used when no config file exists.
func defaultServeConfig() ServeConfig {
	return ServeConfig{
		Addr:  ":8080",
		Cache: CacheConfig{Backend: "file"},
		Store: StoreConfig{Backend: "memory"},
	}
}

// loadServeConfig reads the config file at path, or the default location when
// path is empty. A missing file at the default location is not an error; a
// missing file at an explicit path is.
func loadServeConfig(path string) (ServeConfig, error) {
	cfg := defaultServeConfig()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = configPath(); err != nil {
			return cfg, nil
		}
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// =============================================================================
// Backend Constructors
// =============================================================================

// openCache builds the cache backend described by the config.
func (c CacheConfig) openCache() (cache.Cache, error) {
	switch c.Backend {
	case "", "file":
		dir := c.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		if c.URL == "" {
			return nil, fmt.Errorf("cache backend %q requires url", c.Backend)
		}
		return cache.NewRedisCache(c.URL)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", c.Backend)
	}
}

// openStore builds the layout store described by the config.
func (c StoreConfig) openStore(ctx context.Context) (store.Store, error) {
	switch c.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		if c.URI == "" {
			return nil, fmt.Errorf("store backend %q requires uri", c.Backend)
		}
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        c.URI,
			Database:   c.Database,
			Collection: c.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %q", c.Backend)
	}
}

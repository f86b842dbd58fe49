package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

const (
	cacheKeyPattern = "boxcar:provider:%s"
)

// ErrProviderMissing is returned by Get while a provider is remembered as
// absent from the database.
var ErrProviderMissing = errors.New("provider cached as missing")

//go:generate mockgen -package mockrepository -destination ./mock/mockcache.go . CacheProvider
type CacheProvider interface {
	Get(name string) (ProviderCredential, error)
	Set(name string, credential ProviderCredential) error
	SetMissing(name string) error
}

var _ CacheProvider = (*Cache)(nil)

type Cache struct {
	engine      *ristretto.Cache[string, ProviderCredential]
	expiredTime time.Duration
	missingTTL  time.Duration
}

type CacheParams struct {
	fx.In

	Config CacheConfig
}

func NewCache(lc fx.Lifecycle, params CacheParams) (*Cache, error) {
	engine, err := ristretto.NewCache(&ristretto.Config[string, ProviderCredential]{
		NumCounters: params.Config.NumCounters,
		MaxCost:     params.Config.MaxCost,
		BufferItems: params.Config.BufferItems,
		// every credential costs 1, so MaxCost is the number of cached providers
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			engine.Close()
			return nil
		},
	})

	return &Cache{
		engine:      engine,
		expiredTime: params.Config.ExpiredTime,
		missingTTL:  params.Config.MissingTTL,
	}, nil
}

type CacheConfig struct {
	ExpiredTime time.Duration `envconfig:"CACHE_EXPIRED_TIME" default:"10m"`
	MissingTTL  time.Duration `envconfig:"CACHE_MISSING_TTL" default:"30s"`
	NumCounters int64         `envconfig:"CACHE_NUM_COUNTERS" default:"100000"`
	MaxCost     int64         `envconfig:"CACHE_MAX_COST" default:"10000"`
	BufferItems int64         `envconfig:"CACHE_BUFFER_ITEMS" default:"64"`
}

func NewCacheConfig() CacheConfig {
	var cfg CacheConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

func (c *Cache) Get(name string) (ProviderCredential, error) {
	cacheKey := fmt.Sprintf(cacheKeyPattern, name)

	value, found := c.engine.Get(cacheKey)
	if !found {
		return ProviderCredential{}, fmt.Errorf("cache key: '%s' not found", cacheKey)
	}
	if value.Name == "" {
		return ProviderCredential{}, fmt.Errorf("%w: %s", ErrProviderMissing, name)
	}
	return value, nil
}

// Set is eventually visible: ristretto admits writes through a buffer.
func (c *Cache) Set(name string, credential ProviderCredential) error {
	cacheKey := fmt.Sprintf(cacheKeyPattern, name)

	if !c.engine.SetWithTTL(cacheKey, credential, 1, c.expiredTime) {
		return fmt.Errorf("cache key: '%s' rejected", cacheKey)
	}
	return nil
}

// SetMissing remembers that name has no credential for the missing TTL. A
// zero TTL disables it. A later Set for the same name replaces the entry.
func (c *Cache) SetMissing(name string) error {
	if c.missingTTL <= 0 {
		return nil
	}

	cacheKey := fmt.Sprintf(cacheKeyPattern, name)

	if !c.engine.SetWithTTL(cacheKey, ProviderCredential{}, 1, c.missingTTL) {
		return fmt.Errorf("cache key: '%s' rejected", cacheKey)
	}
	return nil
}

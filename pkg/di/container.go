// Package di wires the caching components together. It manages singleton
// instances of the backing store, key serializer and read-through service,
// and provides factory functions for the domain caches.
package di

import (
	"time"

	"github.com/TingTung93/AI-Schedule-Manager-sub003/cache"
	"github.com/TingTung93/AI-Schedule-Manager-sub003/internal/readthrough"
	"github.com/TingTung93/AI-Schedule-Manager-sub003/schedcache"
)

// Container holds the shared caching infrastructure. All caches built
// from one container share a single store, so invalidation issued through
// any of them is visible to the others.
type Container struct {
	store         cache.Store
	keySerializer cache.KeySerializer
	readThrough   *readthrough.Service
	config        cache.Config
}

// NewContainer builds the store described by config, falling back to the
// in-process store when the configured backend is unreachable, and wires
// the read-through service used for schedule computation coalescing.
func NewContainer(config cache.Config) (*Container, error) {
	store, err := cache.NewStore(config)
	if err != nil {
		return nil, err
	}

	rtCfg := readthrough.DefaultConfig()
	if config.DefaultTTL > 0 {
		rtCfg.TTL = config.DefaultTTL
	}
	rt, err := readthrough.New(rtCfg)
	if err != nil {
		return nil, err
	}

	return &Container{
		store:         store,
		keySerializer: cache.NewDefaultKeySerializer(),
		readThrough:   rt,
		config:        config,
	}, nil
}

// NewContainerWithDefaults builds a container from DefaultConfig. With no
// backend address configured this always yields the in-process store.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(cache.DefaultConfig())
}

// Store returns the singleton store instance.
func (c *Container) Store() cache.Store {
	return c.store
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewScheduleCache creates a schedule cache of T backed by the container's
// store and read-through service.
//
// Since Go methods cannot have type parameters, this is provided as a
// package-level function. Example: NewScheduleCache[Solution](container)
func NewScheduleCache[T any](container *Container, opts ...schedcache.ScheduleOption) *schedcache.ScheduleCache[T] {
	opts = append([]schedcache.ScheduleOption{
		schedcache.WithReadThrough(container.readThrough),
	}, opts...)
	return schedcache.NewScheduleCache[T](container.store, opts...)
}

// NewRuleCache creates a rule cache of T backed by the container's store,
// using the default rule retention when ttl is zero.
func NewRuleCache[T any](container *Container, ttl time.Duration) *schedcache.RuleCache[T] {
	return schedcache.NewRuleCache[T](container.store, ttl)
}

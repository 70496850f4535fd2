package cache

import (
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/TingTung93/AI-Schedule-Manager-sub003/internal/cacheinfra"
)

// Config exposes cache store configuration for consumers of the cache package.
type Config struct {
	// Addr is the address of the networked cache backend ("host:port").
	// Empty means no networked backend is configured and the in-process
	// store is used directly.
	Addr string

	// DialTimeout bounds the initial handshake with the networked backend.
	DialTimeout time.Duration

	// DefaultTTL is the time-to-live applied by callers that do not pick
	// their own. Only the networked backend enforces expiry; the
	// in-process fallback keeps entries until deleted.
	DefaultTTL time.Duration

	// Capacity bounds the in-process store when greater than zero: once
	// exceeded, the oldest-inserted entries are dropped. Zero means
	// unbounded.
	Capacity int

	// Logger receives absorbed-fault reports. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DialTimeout: 2 * time.Second,
		DefaultTTL:  5 * time.Minute,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DialTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.DefaultTTL, validation.Min(time.Duration(0))),
		validation.Field(&c.Capacity, validation.Min(0)),
	)
}

// NewStore constructs a Store from the configuration. When Addr names a
// reachable backend the networked store is returned; when the handshake
// fails, or Addr is empty, the in-process fallback is returned instead. A
// dead backend therefore degrades the deployment, it never fails it.
func NewStore(cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Addr != "" {
		store, err := cacheinfra.NewRedisStore(cfg.Addr, cfg.DialTimeout, logger)
		if err == nil {
			return store, nil
		}
		logger.Warn("cache backend unreachable, falling back to in-process store",
			slog.String("addr", cfg.Addr),
			slog.String("error", err.Error()))
	}

	return cacheinfra.NewMemoryStore(cfg.Capacity, logger), nil
}

// Package dbconn opens bun database handles for the supported SQL
// backends. Callers pick a driver by name; the package maps it to the
// matching bun dialect and registers the underlying database/sql driver.
package dbconn

import (
	"database/sql"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config selects a backend and its connection settings.
type Config struct {
	// Driver is one of DriverSQLite or DriverPostgres.
	Driver string

	// DSN is the driver-specific connection string, e.g.
	// "file::memory:?cache=shared" for sqlite3 or a postgres URL.
	DSN string

	// MaxOpenConns bounds the pool; zero keeps the driver default.
	MaxOpenConns int

	// ConnMaxLifetime recycles pooled connections; zero disables it.
	ConnMaxLifetime time.Duration
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverSQLite, DriverPostgres)),
		validation.Field(&c.DSN, validation.Required),
		validation.Field(&c.MaxOpenConns, validation.Min(0)),
	)
}

// Open validates cfg, opens the connection pool and wraps it with the
// dialect matching cfg.Driver. The caller owns Close on the returned DB.
func Open(cfg Config) (*bun.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dbconn: %w", err)
	}

	sqldb, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("dbconn: open %s: %w", cfg.Driver, err)
	}
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	switch cfg.Driver {
	case DriverPostgres:
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	}
}

// Package database opens the PostgreSQL pool behind the tracker and carries
// its schema migrations. Repositories live in the queries subpackage.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const (
	defaultConnMaxLifetime = 30 * time.Minute
	defaultConnMaxIdleTime = 5 * time.Minute
	defaultPingTimeout     = 10 * time.Second
)

// DB is the shared connection pool. Course, prediction and user repositories
// take the embedded *sql.DB.
type DB struct {
	*sql.DB
}

// Config describes how to reach the tracker database. Zero durations fall
// back to the package defaults.
type Config struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	MaxConnections  int
	SSLMode         string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// DSN renders the lib/pq keyword/value connection string. sslmode defaults
// to disable for local development.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode,
	)
}

func (c Config) withDefaults() Config {
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = defaultConnMaxLifetime
	}
	if c.ConnMaxIdleTime == 0 {
		c.ConnMaxIdleTime = defaultConnMaxIdleTime
	}
	if c.PingTimeout == 0 {
		c.PingTimeout = defaultPingTimeout
	}
	return c
}

// New opens the pool and pings it once. A database that is down at startup
// is an error; later outages are handled by the store's circuit breaker.
func New(cfg Config) (*DB, error) {
	cfg = cfg.withDefaults()

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxConnections / 2)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database %s@%s:%d/%s: %w", cfg.User, cfg.Host, cfg.Port, cfg.Name, err)
	}

	return Wrap(db), nil
}

// Wrap adopts an already opened pool, e.g. one built by a test driver.
func Wrap(db *sql.DB) *DB {
	return &DB{DB: db}
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// HealthCheck is the connectivity half of the store's readiness check; the
// schema half is TableExists.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

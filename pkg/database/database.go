// Package database provides PostgreSQL connection management for the tenant
// store, with lifecycle coordination. Classeur only ever reads from this
// store (counterparty directory, custom rules); result persistence belongs
// to the surrounding intranet services.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tlemoine/classeur/pkg/lifecycle"
)

// Database wraps the tenant store connection pool.
type Database struct {
	conn        *sql.DB
	logger      *slog.Logger
	connTimeout time.Duration
}

// New opens the connection pool for the given configuration. sql.Open
// validates the DSN and configures pool parameters but does not connect;
// the first query or Start establishes the connection.
func New(cfg *Config, logger *slog.Logger) (*Database, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &Database{
		conn:        db,
		logger:      logger.With("system", "database"),
		connTimeout: cfg.ConnTimeoutDuration(),
	}, nil
}

// Connection returns the underlying connection pool.
func (d *Database) Connection() *sql.DB {
	return d.conn
}

// Ping verifies the connection within the configured timeout.
func (d *Database) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, d.connTimeout)
	defer cancel()

	return d.conn.PingContext(pingCtx)
}

// Start registers startup and shutdown hooks with the lifecycle coordinator.
func (d *Database) Start(lc *lifecycle.Coordinator) {
	lc.OnStartup(func() {
		if err := d.Ping(lc.Context()); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}

		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}

		d.logger.Info("database connection closed")
	})
}

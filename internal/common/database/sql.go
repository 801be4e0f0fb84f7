// internal/common/database/sql.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"icon-registry/internal/common/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// SQLClient wraps the SQL connection used for catalogue snapshots.
type SQLClient struct {
	DB     *sql.DB
	Driver string
}

// NewSQL opens the snapshot database for cfg.Driver ("sqlite" or "postgres").
func NewSQL(cfg config.SnapshotConfig) (*SQLClient, error) {
	switch cfg.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported snapshot driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		// One writer; in-memory databases are per-connection and must not be recycled.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(cfg.MaxIdle)
		db.SetConnMaxLifetime(5 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	return &SQLClient{DB: db, Driver: cfg.Driver}, nil
}

// Ping tests the database connection
func (c *SQLClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection
func (c *SQLClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

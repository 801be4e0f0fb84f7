// Package snapshot persists fetched catalogues in SQL so generation can run
// without the upstream.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"icon-registry/internal/common/database"
	apperrors "icon-registry/internal/common/errors"
	"icon-registry/internal/common/logger"
	"icon-registry/internal/icons/catalogue"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const createTable = `CREATE TABLE IF NOT EXISTS icon_snapshot (
	name TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

type queries struct {
	insert string
	lookup string
}

var dialects = map[string]queries{
	DriverSQLite: {
		insert: `INSERT INTO icon_snapshot (name, content, updated_at) VALUES (?, ?, ?)`,
		lookup: `SELECT content FROM icon_snapshot WHERE name = ?`,
	},
	DriverPostgres: {
		insert: `INSERT INTO icon_snapshot (name, content, updated_at) VALUES ($1, $2, $3)`,
		lookup: `SELECT content FROM icon_snapshot WHERE name = $1`,
	},
}

const (
	deleteAll = `DELETE FROM icon_snapshot`
	selectAll = `SELECT name, content FROM icon_snapshot ORDER BY name`
)

// Store reads and writes catalogue snapshots.
type Store struct {
	db      *sql.DB
	queries queries
	logger  logger.Logger
}

func New(db *sql.DB, driver string, log logger.Logger) (*Store, error) {
	q, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported snapshot driver %q", driver)
	}
	return &Store{
		db:      db,
		queries: q,
		logger:  logger.OrNoOp(log).WithFields(map[string]interface{}{"component": "snapshot", "driver": driver}),
	}, nil
}

func NewFromClient(client *database.SQLClient, log logger.Logger) (*Store, error) {
	return New(client.DB, client.Driver, log)
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return apperrors.NewSnapshotFailedError("migrate", err)
	}
	return nil
}

// Save replaces the stored snapshot with cat in one transaction.
func (s *Store) Save(ctx context.Context, cat catalogue.Catalogue) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewSnapshotFailedError("begin", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteAll); err != nil {
		return apperrors.NewSnapshotFailedError("clear", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.queries.insert)
	if err != nil {
		return apperrors.NewSnapshotFailedError("prepare", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, r := range cat.Records() {
		if _, err = stmt.ExecContext(ctx, r.RawName, r.Content, now); err != nil {
			return apperrors.NewSnapshotFailedError("insert", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return apperrors.NewSnapshotFailedError("commit", err)
	}

	s.logger.Info("snapshot saved", map[string]interface{}{"icons": len(cat)})
	return nil
}

// Load returns the stored snapshot. An empty table yields an empty catalogue.
func (s *Store) Load(ctx context.Context) (catalogue.Catalogue, error) {
	rows, err := s.db.QueryContext(ctx, selectAll)
	if err != nil {
		return nil, apperrors.NewSnapshotFailedError("load", err)
	}
	defer rows.Close()

	var records []catalogue.Record
	for rows.Next() {
		var r catalogue.Record
		if err := rows.Scan(&r.RawName, &r.Content); err != nil {
			return nil, apperrors.NewSnapshotFailedError("scan", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewSnapshotFailedError("load", err)
	}
	return catalogue.FromRecords(records), nil
}

// Lookup implements catalogue.Source.
func (s *Store) Lookup(ctx context.Context, name string) (string, bool) {
	var content string
	err := s.db.QueryRowContext(ctx, s.queries.lookup, name).Scan(&content)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("snapshot lookup failed", map[string]interface{}{
				"name":      name,
				"errorCode": apperrors.ErrCodeSnapshotFailed,
				"error":     err.Error(),
			})
		}
		return "", false
	}
	return content, true
}

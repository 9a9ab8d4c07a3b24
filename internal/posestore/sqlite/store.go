// Package sqlite implements posestore.Store over a SQLite database: the
// concrete pose store contract from spec.md §6 — a table named "Node"
// with an integer id column and a 48-byte pose blob column.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/pathgraph/internal/posestore"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store reads pose records from a SQLite-backed pose store.
type Store struct {
	db *sql.DB
}

var _ posestore.Store = (*Store)(nil)

// Open opens (and, if necessary, creates) the SQLite database at path,
// applies the startup PRAGMAs the teacher repo uses for single-writer
// workloads, and brings the schema up to the latest migration.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite pose store: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenDB wraps an already-open database handle, skipping schema
// migration. Callers are responsible for ensuring the Node table exists
// (used by tests that build their own fixture schema).
func OpenDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) migrateUp() error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("pose store migrations: %w", err)
	}
	dbDriver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("pose store migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("pose store migration instance: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("pose store migrate up: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReadAll reads every row of the Node table in ascending id order, per
// the pose store read contract in spec.md §6.
func (s *Store) ReadAll(ctx context.Context) ([]posestore.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, pose FROM Node ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("read pose store: %w", err)
	}
	defer rows.Close()

	var records []posestore.Record
	for rows.Next() {
		var rec posestore.Record
		if err := rows.Scan(&rec.ID, &rec.Pose); err != nil {
			return nil, fmt.Errorf("scan pose row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pose store: %w", err)
	}
	return records, nil
}

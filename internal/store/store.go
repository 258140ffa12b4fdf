// Package store persists learners, rating history, skill progress, session
// history and baseline results in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// Store wraps the SQLite connection and hands out repositories.
type Store struct {
	db  *sql.DB
	q   dbtx // db, or the transaction of a Store passed to InTx
	drv *entsql.Driver
}

// dbtx is the part of *sql.DB and *sql.Tx the repositories use.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them uniform.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, q: db, drv: drv}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// InTx runs fn with a Store bound to a single transaction, committed when fn
// returns nil and rolled back otherwise. Calls on a transactional Store join
// its transaction. The Store passed to fn must not be closed, and fn must not
// use the outer Store: the pool holds one connection.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	return inTx(ctx, s.q, func(q dbtx) error {
		return fn(&Store{db: s.db, q: q, drv: s.drv})
	})
}

// Learners returns a LearnerRepo backed by this store.
func (s *Store) Learners() LearnerRepo {
	return &learnerRepo{db: s.q}
}

// Ratings returns a RatingRepo backed by this store.
func (s *Store) Ratings() RatingRepo {
	return &ratingRepo{db: s.q}
}

// Progress returns a ProgressRepo backed by this store.
func (s *Store) Progress() ProgressRepo {
	return &progressRepo{db: s.q}
}

// Sessions returns a SessionRepo backed by this store.
func (s *Store) Sessions() SessionRepo {
	return &sessionRepo{db: s.q}
}

// Baselines returns a BaselineRepo backed by this store.
func (s *Store) Baselines() BaselineRepo {
	return &baselineRepo{db: s.q}
}

func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. STORYQUEST_DB environment variable
// 2. $XDG_DATA_HOME/storyquest/storyquest.db
// 3. ~/.local/share/storyquest/storyquest.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("STORYQUEST_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "storyquest", "storyquest.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// inTx runs fn on q when it already is a transaction, and on a new one
// otherwise.
func inTx(ctx context.Context, q dbtx, fn func(dbtx) error) error {
	db, ok := q.(*sql.DB)
	if !ok {
		return fn(q)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func exec(ctx context.Context, db dbtx, q entsql.Querier) error {
	stmt, args := q.Query()
	_, err := db.ExecContext(ctx, stmt, args...)
	return err
}

func query(ctx context.Context, db dbtx, q entsql.Querier) (*sql.Rows, error) {
	stmt, args := q.Query()
	return db.QueryContext(ctx, stmt, args...)
}

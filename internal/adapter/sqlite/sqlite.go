// Package sqlite implements the domain repositories on a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mattn/go-sqlite3"

	"bmitracker/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a *sql.DB and implements domain repository interfaces. Every
// operation acquires its own connection and releases it before returning.
type DB struct {
	sql *sql.DB
	dsn string
	now func() time.Time
}

// Option configures a DB.
type Option func(*DB)

// WithClock sets the clock used to stamp observation dates.
func WithClock(now func() time.Time) Option {
	return func(d *DB) { d.now = now }
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.ObservationRepository = (*DB)(nil)

// Open opens the database file at path, pings, and initializes the schema.
func Open(ctx context.Context, path string, opts ...Option) (*DB, error) {
	dsn := withParams(path, "_foreign_keys=on", "_busy_timeout=5000")
	s, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s.SetMaxOpenConns(1) // single writer
	s.SetMaxIdleConns(1)
	s.SetConnMaxIdleTime(time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.PingContext(pingCtx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	d := &DB{sql: s, dsn: dsn, now: time.Now}
	for _, o := range opts {
		o(d)
	}
	if err := d.Initialize(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Initialize applies pending migrations. The DDL only creates missing
// objects, so databases created without migration tracking are adopted
// with their rows intact. Safe to call repeatedly.
func (d *DB) Initialize(ctx context.Context) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	// The migrator owns its own handle and closes it.
	ms, err := sql.Open("sqlite3", d.dsn)
	if err != nil {
		return fmt.Errorf("migration database: %w", err)
	}
	driver, err := migratesqlite.WithInstance(ms, &migratesqlite.Config{})
	if err != nil {
		_ = ms.Close()
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("migrator: %w", err)
	}
	defer m.Close() //nolint:errcheck

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (d *DB) withConn(ctx context.Context, fn func(*sql.Conn) error) error {
	conn, err := d.sql.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close() //nolint:errcheck
	return fn(conn)
}

func (d *DB) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return d.withConn(ctx, func(conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer tx.Rollback() //nolint:errcheck

		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func withParams(path string, params ...string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"

	"bmitracker/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const uniqueViolation = "23505"

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql         *sql.DB
	databaseURL string
	now         func() time.Time
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

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(ctx context.Context, databaseURL string, opts ...Option) (*DB, error) {
	s, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.PingContext(pingCtx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s, databaseURL: databaseURL, now: time.Now}
	for _, o := range opts {
		o(d)
	}
	if err := d.Initialize(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Initialize applies pending migrations; already-current schemas are left
// untouched.
func (d *DB) Initialize(ctx context.Context) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, d.databaseURL)
	if err != nil {
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
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

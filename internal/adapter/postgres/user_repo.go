package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bmitracker/internal/domain"
)

// RegisterUser creates a new user.
func (d *DB) RegisterUser(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			"INSERT INTO users (name) VALUES ($1) RETURNING id, name",
			name,
		).Scan(&u.ID, &u.Name)
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns user names in registration order.
func (d *DB) ListUsers(ctx context.Context) ([]string, error) {
	names := []string{}
	err := d.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, "SELECT name FROM users ORDER BY id")
		if err != nil {
			return err
		}
		defer rows.Close() //nolint:errcheck

		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			names = append(names, name)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return names, nil
}

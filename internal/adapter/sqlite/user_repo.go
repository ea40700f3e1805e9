package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"bmitracker/internal/domain"
)

// RegisterUser inserts a user, reporting domain.ErrAlreadyExists on a
// duplicate name.
func (d *DB) RegisterUser(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "INSERT INTO users (name) VALUES (?)", name)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrAlreadyExists
			}
			return fmt.Errorf("insert user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		u = domain.User{ID: id, Name: name}
		return nil
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

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bmitracker/internal/domain"
)

// AppendObservation resolves the user and inserts an observation stamped with
// the current local day, in one transaction.
func (d *DB) AppendObservation(ctx context.Context, userName string, weightKg, heightCm, bmi float64) (*domain.Observation, error) {
	o := domain.Observation{
		WeightKg: weightKg,
		HeightCm: heightCm,
		BMI:      bmi,
		Date:     d.now().In(time.Local).Format(domain.DayLayout),
	}
	err := d.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, "SELECT id FROM users WHERE name = ?", userName).Scan(&o.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %q", domain.ErrUserNotFound, userName)
		}
		if err != nil {
			return fmt.Errorf("resolve user: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			"INSERT INTO bmi_records (user_id, weight, height, bmi, date) VALUES (?, ?, ?, ?, ?)",
			o.UserID, o.WeightKg, o.HeightCm, o.BMI, o.Date,
		)
		if err != nil {
			return fmt.Errorf("insert observation: %w", err)
		}
		o.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// QueryHistory returns a user's observations ascending by date, same-day rows
// in insertion order. Unknown users yield an empty slice.
func (d *DB) QueryHistory(ctx context.Context, userName string) ([]domain.Observation, error) {
	out := []domain.Observation{}
	err := d.withConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			`SELECT r.id, r.user_id, r.weight, r.height, r.bmi, r.date
			FROM bmi_records r JOIN users u ON u.id = r.user_id
			WHERE u.name = ?
			ORDER BY r.date ASC, r.id ASC`, userName)
		if err != nil {
			return err
		}
		defer rows.Close() //nolint:errcheck

		for rows.Next() {
			var o domain.Observation
			if err := rows.Scan(&o.ID, &o.UserID, &o.WeightKg, &o.HeightCm, &o.BMI, &o.Date); err != nil {
				return err
			}
			out = append(out, o)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return out, nil
}

// Package domain contains the core business entities, the BMI metric engine
// and the persistence ports.
package domain

import (
	"context"
)

// User is a named person whose measurements are tracked.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserRepository defines the port for user persistence operations.
type UserRepository interface {
	// RegisterUser inserts a new user. It returns ErrAlreadyExists when the
	// name is taken.
	RegisterUser(ctx context.Context, name string) (*User, error)
	// ListUsers returns every registered name in registration order.
	ListUsers(ctx context.Context) ([]string, error)
}

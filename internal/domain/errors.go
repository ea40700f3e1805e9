package domain

import "errors"

var (
	// ErrAlreadyExists indicates a user name is already registered.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrInvalidInput indicates a missing user or a non-numeric or
	// non-positive weight/height.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUserNotFound indicates the user is not registered.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoData indicates there are no observations to chart.
	ErrNoData = errors.New("no data")
	// ErrBadDate indicates a stored observation date is not in DayLayout.
	ErrBadDate = errors.New("unparseable observation date")
)

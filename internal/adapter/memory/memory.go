// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"bmitracker/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu           sync.Mutex
	users        []domain.User
	observations []domain.Observation
	now          func() time.Time

	userIDCounter        int64
	observationIDCounter int64
}

// Option configures a DB.
type Option func(*DB)

// WithClock sets the clock used to stamp observation dates.
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// New creates a new in-memory database.
func New(opts ...Option) *DB {
	db := &DB{now: time.Now}
	for _, o := range opts {
		o(db)
	}
	return db
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.ObservationRepository = (*DB)(nil)

// Initialize is a no-op; the in-memory schema always exists.
func (db *DB) Initialize(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (db *DB) Close() error {
	return nil
}

// --- UserRepository ---

// RegisterUser adds a user.
func (db *DB) RegisterUser(ctx context.Context, name string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.lookup(name); ok {
		return nil, domain.ErrAlreadyExists
	}

	db.userIDCounter++
	u := domain.User{ID: db.userIDCounter, Name: name}
	db.users = append(db.users, u)
	return &u, nil
}

// ListUsers returns user names in registration order.
func (db *DB) ListUsers(ctx context.Context) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	names := make([]string, 0, len(db.users))
	for _, u := range db.users {
		names = append(names, u.Name)
	}
	return names, nil
}

// lookup must be called with mu held.
func (db *DB) lookup(name string) (domain.User, bool) {
	for _, u := range db.users {
		if u.Name == name {
			return u, true
		}
	}
	return domain.User{}, false
}

// --- ObservationRepository ---

// AppendObservation stores an observation stamped with today's local date.
func (db *DB) AppendObservation(ctx context.Context, userName string, weightKg, heightCm, bmi float64) (*domain.Observation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	u, ok := db.lookup(userName)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	db.observationIDCounter++
	o := domain.Observation{
		ID:       db.observationIDCounter,
		UserID:   u.ID,
		WeightKg: weightKg,
		HeightCm: heightCm,
		BMI:      bmi,
		Date:     db.now().In(time.Local).Format(domain.DayLayout),
	}
	db.observations = append(db.observations, o)
	return &o, nil
}

// QueryHistory returns the user's observations ascending by date.
func (db *DB) QueryHistory(ctx context.Context, userName string) ([]domain.Observation, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.Observation{}
	u, ok := db.lookup(userName)
	if !ok {
		return result, nil
	}
	for _, o := range db.observations {
		if o.UserID == u.ID {
			result = append(result, o)
		}
	}

	// stable: same-day rows keep insertion order
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

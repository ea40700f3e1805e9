package app

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"bmitracker/internal/domain"
	"bmitracker/internal/metrics"
)

// UserService manages the registry of tracked users.
type UserService struct {
	users   domain.UserRepository
	log     *zap.Logger
	metrics metrics.Recorder
}

// NewUserService creates a new user registry service.
func NewUserService(users domain.UserRepository, log *zap.Logger, rec metrics.Recorder) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &UserService{users: users, log: log, metrics: rec}
}

// Register adds a user under the name exactly as entered. Blank names are
// rejected with domain.ErrInvalidInput; taken names with
// domain.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, name string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" {
		s.metrics.RecordRejectedInput("name")
		return nil, invalidInput("name", "enter a user name")
	}

	u, err := s.users.RegisterUser(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.log.Info("user already exists", zap.String("user", name))
		}
		return nil, err
	}

	s.metrics.RecordUserRegistered()
	s.log.Info("user registered", zap.String("user", u.Name), zap.Int64("id", u.ID))
	return u, nil
}

// List returns every registered user name.
func (s *UserService) List(ctx context.Context) ([]string, error) {
	return s.users.ListUsers(ctx)
}

// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"bmitracker/internal/domain"
	"bmitracker/internal/metrics"
)

// Measurement is a validated measurement request.
type Measurement struct {
	UserName string
	WeightKg float64
	HeightCm float64
}

// ParseMeasurement converts raw form values into a Measurement. Any missing
// user, non-numeric or non-positive value yields domain.ErrInvalidInput.
func ParseMeasurement(userName, weight, height string) (Measurement, error) {
	m := Measurement{UserName: userName}
	var err error
	if m.WeightKg, err = parsePositive("weight", weight); err != nil {
		return Measurement{}, err
	}
	if m.HeightCm, err = parsePositive("height", height); err != nil {
		return Measurement{}, err
	}
	if err := m.Validate(); err != nil {
		return Measurement{}, err
	}
	return m, nil
}

// Validate checks the user is selected and both values are positive and finite.
func (m Measurement) Validate() error {
	if m.UserName == "" {
		return invalidInput("user", "select a user")
	}
	if !positive(m.WeightKg) {
		return invalidInput("weight", "weight must be a positive number")
	}
	if !positive(m.HeightCm) {
		return invalidInput("height", "height must be a positive number")
	}
	return nil
}

// InputError is a domain.ErrInvalidInput carrying the offending field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", domain.ErrInvalidInput, e.Reason)
}

func (e *InputError) Unwrap() error {
	return domain.ErrInvalidInput
}

func invalidInput(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}

func parsePositive(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !positive(v) {
		return 0, invalidInput(field, field+" must be a positive number")
	}
	return v, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// HistoryService encapsulates measurement and history use cases.
type HistoryService struct {
	repo    domain.ObservationRepository
	log     *zap.Logger
	metrics metrics.Recorder
}

// NewHistoryService creates a HistoryService backed by the given repository.
// A nil logger or recorder disables logging or metrics.
func NewHistoryService(repo domain.ObservationRepository, log *zap.Logger, rec metrics.Recorder) *HistoryService {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &HistoryService{repo: repo, log: log, metrics: rec}
}

// RecordMeasurement parses raw input, computes the BMI and its category and
// stores the observation. Invalid input is rejected before anything is
// computed or written.
func (s *HistoryService) RecordMeasurement(ctx context.Context, userName, weight, height string) (*domain.Result, error) {
	m, err := ParseMeasurement(userName, weight, height)
	if err != nil {
		s.reject(err)
		return nil, err
	}
	return s.record(ctx, m)
}

// Record stores an already-typed measurement.
func (s *HistoryService) Record(ctx context.Context, m Measurement) (*domain.Result, error) {
	if err := m.Validate(); err != nil {
		s.reject(err)
		return nil, err
	}
	return s.record(ctx, m)
}

func (s *HistoryService) record(ctx context.Context, m Measurement) (*domain.Result, error) {
	bmi := domain.ComputeBMI(m.WeightKg, m.HeightCm)
	category := domain.Categorize(bmi)

	o, err := s.repo.AppendObservation(ctx, m.UserName, m.WeightKg, m.HeightCm, bmi)
	if err != nil {
		return nil, fmt.Errorf("record measurement: %w", err)
	}

	s.metrics.RecordMeasurement(string(category))
	s.log.Info("measurement recorded",
		zap.String("user", m.UserName),
		zap.Float64("bmi", bmi),
		zap.String("category", string(category)),
		zap.String("date", o.Date),
	)
	return &domain.Result{BMI: bmi, Category: category, Observation: *o}, nil
}

func (s *HistoryService) reject(err error) {
	field := "unknown"
	var ie *InputError
	if errors.As(err, &ie) {
		field = ie.Field
	}
	s.metrics.RecordRejectedInput(field)
	s.log.Debug("measurement rejected", zap.Error(err))
}

// GetHistory returns the user's observations ascending by date.
func (s *HistoryService) GetHistory(ctx context.Context, userName string) ([]domain.Observation, error) {
	return s.repo.QueryHistory(ctx, userName)
}

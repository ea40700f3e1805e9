package app_test

import (
	"context"
	"errors"
	"testing"

	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

type mockObservationRepo struct {
	appendFn func(ctx context.Context, userName string, weightKg, heightCm, bmi float64) (*domain.Observation, error)
	queryFn  func(ctx context.Context, userName string) ([]domain.Observation, error)
}

func (m *mockObservationRepo) AppendObservation(ctx context.Context, userName string, weightKg, heightCm, bmi float64) (*domain.Observation, error) {
	if m.appendFn != nil {
		return m.appendFn(ctx, userName, weightKg, heightCm, bmi)
	}
	return &domain.Observation{ID: 1, UserID: 1, WeightKg: weightKg, HeightCm: heightCm, BMI: bmi, Date: "2026-04-01"}, nil
}

func (m *mockObservationRepo) QueryHistory(ctx context.Context, userName string) ([]domain.Observation, error) {
	if m.queryFn != nil {
		return m.queryFn(ctx, userName)
	}
	return []domain.Observation{}, nil
}

type countingRecorder struct {
	registered int
	measured   map[string]int
	rejected   map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{measured: map[string]int{}, rejected: map[string]int{}}
}

func (r *countingRecorder) RecordUserRegistered()             { r.registered++ }
func (r *countingRecorder) RecordMeasurement(category string) { r.measured[category]++ }
func (r *countingRecorder) RecordRejectedInput(reason string) { r.rejected[reason]++ }
func (r *countingRecorder) RecordHTTPStatus(int)              {}

func TestRecordMeasurement_Success(t *testing.T) {
	var gotUser string
	var gotBMI float64
	repo := &mockObservationRepo{
		appendFn: func(_ context.Context, userName string, w, h, bmi float64) (*domain.Observation, error) {
			gotUser, gotBMI = userName, bmi
			return &domain.Observation{ID: 7, UserID: 1, WeightKg: w, HeightCm: h, BMI: bmi, Date: "2026-04-01"}, nil
		},
	}
	rec := newCountingRecorder()
	svc := app.NewHistoryService(repo, nil, rec)

	res, err := svc.RecordMeasurement(context.Background(), "Alice", "70", " 175 ")
	if err != nil {
		t.Fatalf("RecordMeasurement: %v", err)
	}
	if res.BMI != 22.86 {
		t.Errorf("BMI = %v, want 22.86", res.BMI)
	}
	if res.Category != domain.Normal {
		t.Errorf("Category = %q, want %q", res.Category, domain.Normal)
	}
	if res.Observation.ID != 7 || res.Observation.Date != "2026-04-01" {
		t.Errorf("unexpected observation %+v", res.Observation)
	}
	if gotUser != "Alice" || gotBMI != 22.86 {
		t.Errorf("stored user=%q bmi=%v", gotUser, gotBMI)
	}
	if rec.measured["Normal"] != 1 {
		t.Errorf("measurement metric = %d, want 1", rec.measured["Normal"])
	}
	if got := res.String(); got != "BMI: 22.86 (Normal)" {
		t.Errorf("String() = %q", got)
	}
}

func TestRecordMeasurement_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		user   string
		weight string
		height string
		field  string
	}{
		{"empty weight", "Alice", "", "175", "weight"},
		{"non-numeric weight", "Alice", "abc", "175", "weight"},
		{"negative weight", "Alice", "-5", "175", "weight"},
		{"zero height", "Alice", "70", "0", "height"},
		{"nan height", "Alice", "70", "NaN", "height"},
		{"infinite weight", "Alice", "inf", "175", "weight"},
		{"no user", "", "70", "175", "user"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockObservationRepo{
				appendFn: func(context.Context, string, float64, float64, float64) (*domain.Observation, error) {
					t.Fatal("nothing should be written for invalid input")
					return nil, nil
				},
			}
			rec := newCountingRecorder()
			svc := app.NewHistoryService(repo, nil, rec)

			_, err := svc.RecordMeasurement(context.Background(), tc.user, tc.weight, tc.height)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			var ie *app.InputError
			if !errors.As(err, &ie) || ie.Field != tc.field {
				t.Errorf("field = %v, want %q", ie, tc.field)
			}
			if rec.rejected[tc.field] != 1 {
				t.Errorf("rejected[%q] = %d, want 1", tc.field, rec.rejected[tc.field])
			}
		})
	}
}

func TestRecord_TypedMeasurement(t *testing.T) {
	svc := app.NewHistoryService(&mockObservationRepo{}, nil, nil)

	res, err := svc.Record(context.Background(), app.Measurement{UserName: "Bob", WeightKg: 95, HeightCm: 175})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if res.BMI != 31.02 || res.Category != domain.Obese {
		t.Errorf("got %v (%s), want 31.02 (Obese)", res.BMI, res.Category)
	}

	_, err = svc.Record(context.Background(), app.Measurement{UserName: "Bob", WeightKg: 95, HeightCm: -1})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestRecordMeasurement_UnknownUser(t *testing.T) {
	repo := &mockObservationRepo{
		appendFn: func(context.Context, string, float64, float64, float64) (*domain.Observation, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	rec := newCountingRecorder()
	svc := app.NewHistoryService(repo, nil, rec)

	_, err := svc.RecordMeasurement(context.Background(), "ghost", "70", "175")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
	if len(rec.measured) != 0 {
		t.Errorf("failed write should not be counted: %v", rec.measured)
	}
}

func TestGetHistory_PassesThrough(t *testing.T) {
	want := []domain.Observation{
		{ID: 1, WeightKg: 70, HeightCm: 175, BMI: 22.86, Date: "2026-04-01"},
		{ID: 2, WeightKg: 71, HeightCm: 175, BMI: 23.18, Date: "2026-04-02"},
	}
	repo := &mockObservationRepo{
		queryFn: func(_ context.Context, userName string) ([]domain.Observation, error) {
			if userName != "Alice" {
				t.Errorf("userName = %q", userName)
			}
			return want, nil
		},
	}
	svc := app.NewHistoryService(repo, nil, nil)

	got, err := svc.GetHistory(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(got) != 2 || got[1].BMI != 23.18 {
		t.Errorf("got %+v", got)
	}
}

func TestGetHistory_Error(t *testing.T) {
	boom := errors.New("boom")
	svc := app.NewHistoryService(&mockObservationRepo{
		queryFn: func(context.Context, string) ([]domain.Observation, error) { return nil, boom },
	}, nil, nil)

	if _, err := svc.GetHistory(context.Background(), "Alice"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

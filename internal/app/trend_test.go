package app_test

import (
	"context"
	"errors"
	"testing"

	"bmitracker/internal/app"
	"bmitracker/internal/domain"
)

func TestGetTrend_SortsByDate(t *testing.T) {
	repo := &mockObservationRepo{
		queryFn: func(context.Context, string) ([]domain.Observation, error) {
			return []domain.Observation{
				{ID: 3, BMI: 23.51, Date: "2026-04-03"},
				{ID: 1, BMI: 22.86, Date: "2026-04-01"},
				{ID: 2, BMI: 23.18, Date: "2026-04-02"},
			}, nil
		},
	}
	svc := app.NewHistoryService(repo, nil, nil)

	points, err := svc.GetTrend(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("GetTrend: %v", err)
	}
	want := []struct {
		day string
		bmi float64
	}{
		{"2026-04-01", 22.86},
		{"2026-04-02", 23.18},
		{"2026-04-03", 23.51},
	}
	if len(points) != len(want) {
		t.Fatalf("got %d points, want %d", len(points), len(want))
	}
	for i, w := range want {
		if points[i].Day() != w.day || points[i].BMI != w.bmi {
			t.Errorf("point %d = %s/%v, want %s/%v", i, points[i].Day(), points[i].BMI, w.day, w.bmi)
		}
	}
}

func TestGetTrend_SameDayKeepsStoredOrder(t *testing.T) {
	repo := &mockObservationRepo{
		queryFn: func(context.Context, string) ([]domain.Observation, error) {
			return []domain.Observation{
				{ID: 1, BMI: 22.86, Date: "2026-04-01"},
				{ID: 2, BMI: 23.18, Date: "2026-04-01"},
			}, nil
		},
	}
	svc := app.NewHistoryService(repo, nil, nil)

	points, err := svc.GetTrend(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("GetTrend: %v", err)
	}
	if points[0].BMI != 22.86 || points[1].BMI != 23.18 {
		t.Errorf("same-day points reordered: %+v", points)
	}
}

func TestGetTrend_NoData(t *testing.T) {
	svc := app.NewHistoryService(&mockObservationRepo{}, nil, nil)

	_, err := svc.GetTrend(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestGetTrend_BadDate(t *testing.T) {
	repo := &mockObservationRepo{
		queryFn: func(context.Context, string) ([]domain.Observation, error) {
			return []domain.Observation{{ID: 1, BMI: 22.86, Date: "01/04/2026"}}, nil
		},
	}
	svc := app.NewHistoryService(repo, nil, nil)

	_, err := svc.GetTrend(context.Background(), "Alice")
	if !errors.Is(err, domain.ErrBadDate) {
		t.Errorf("err = %v, want ErrBadDate", err)
	}
}

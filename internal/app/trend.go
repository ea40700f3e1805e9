package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bmitracker/internal/domain"
)

// GetTrend returns the user's BMI values ascending by date for charting. The
// series is re-sorted here so stores that do not order rows still chart
// correctly. It returns domain.ErrNoData when there is nothing to plot.
func (s *HistoryService) GetTrend(ctx context.Context, userName string) ([]domain.TrendPoint, error) {
	history, err := s.repo.QueryHistory(ctx, userName)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("trend for %q: %w", userName, domain.ErrNoData)
	}

	points := make([]domain.TrendPoint, 0, len(history))
	for _, o := range history {
		day, err := time.ParseInLocation(domain.DayLayout, o.Date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("trend for %q: observation %d: %w: %v", userName, o.ID, domain.ErrBadDate, err)
		}
		points = append(points, domain.TrendPoint{Date: day, BMI: o.BMI})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}

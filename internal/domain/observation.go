package domain

import (
	"context"
	"fmt"
	"time"
)

// DayLayout is the storage format of an observation date.
const DayLayout = "2006-01-02"

// Observation is a single persisted BMI record.
type Observation struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"userId"`
	WeightKg float64 `json:"weight"`
	HeightCm float64 `json:"height"`
	BMI      float64 `json:"bmi"`
	Date     string  `json:"date"`
}

// Result is the outcome of taking a measurement.
type Result struct {
	BMI         float64     `json:"bmi"`
	Category    Category    `json:"category"`
	Observation Observation `json:"entry"`
}

func (r Result) String() string {
	return fmt.Sprintf("BMI: %v (%s)", r.BMI, r.Category)
}

// TrendPoint is one chart point of a user's BMI trend.
type TrendPoint struct {
	Date time.Time `json:"-"`
	BMI  float64   `json:"bmi"`
}

// Day returns the point's date in DayLayout.
func (p TrendPoint) Day() string {
	return p.Date.Format(DayLayout)
}

// ObservationRepository is the port for observation persistence.
type ObservationRepository interface {
	// AppendObservation stamps the current local day and stores the record.
	// It returns ErrUserNotFound when userName is not registered.
	AppendObservation(ctx context.Context, userName string, weightKg, heightCm, bmi float64) (*Observation, error)
	// QueryHistory returns the user's observations ascending by date, ties in
	// insertion order. Unknown users yield an empty slice.
	QueryHistory(ctx context.Context, userName string) ([]Observation, error)
}

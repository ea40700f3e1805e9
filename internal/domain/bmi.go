package domain

import "strconv"

// Category is a BMI band.
type Category string

// BMI bands in ascending order.
const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

// ComputeBMI returns weight / (height in metres)², rounded to 2 decimals.
// Rounding is decided on the exact value of the quotient, ties to even.
// heightCm must be > 0; callers validate before calling.
func ComputeBMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return round2(weightKg / (m * m))
}

// Categorize maps a BMI value to its band. Values in [24.9, 25) fall into
// Overweight, matching the banding stored data was recorded with.
func Categorize(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return Underweight
	case bmi < 24.9:
		return Normal
	case bmi < 29.9:
		return Overweight
	default:
		return Obese
	}
}

// round2 must not scale by 100 first: the product can land on a .xx5 tie.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

package services

import "math"

// Rounding boundaries differ on purpose and must stay exactly where they
// are: pantry quantities carry 3 decimals, shopping-list quantities and
// macro grams 2, calories none.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func roundCalories(v float64) float64 {
	return math.Round(v)
}

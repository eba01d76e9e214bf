package utils

// CalculateBMI expects height in centimeters and weight in kilograms.
// Callers validate ranges at the API boundary, so no sanity checks here.
func CalculateBMI(heightCm, weightKg float64) float64 {
	h := heightCm / 100.0 // to meters
	return weightKg / (h * h)
}

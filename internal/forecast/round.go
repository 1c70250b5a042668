package forecast

import "math"

// RoundToHalfDegree rounds v to the nearest 0.5. Ties on the doubled value
// round away from zero, so 10.25 becomes 10.5 and -10.25 becomes -10.5.
func RoundToHalfDegree(v float64) float64 {
	return math.Round(v*2) / 2
}

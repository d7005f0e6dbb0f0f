package allocator

import "math"

// roundHours rounds to one decimal place, ties to even.
func roundHours(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}

package chart

import (
	"fmt"

	"Stox/internal/calculator"
)

// Margin is the number of pixels kept free above the highest point.
const Margin = 5

// Scale maps prices into pixel space [0, height-Margin] by min/max
// normalization. A flat series scales to all zeros.
//
// A negative result is mirrored to its absolute value rather than clamped.
// This can turn a dip into a spike; see DESIGN.md before changing it.
func Scale(prices []float64, height int) ([]float64, error) {
	if len(prices) == 0 {
		return nil, ErrEmptySeries
	}
	if height <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHeight, height)
	}
	low, high, err := calculator.SeriesBounds(prices)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(prices))
	if high == low {
		return out, nil
	}
	span := float64(height - Margin)
	for i, p := range prices {
		v := (p - low) / (high - low) * span
		if v < 0 {
			v = -v
		}
		out[i] = v
	}
	return out, nil
}

package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"Stox/internal/model"
)

// ErrNonFinite is returned when a price is NaN or infinite.
var ErrNonFinite = errors.New("non-finite price")

// SeriesBounds returns the minimum and maximum of prices.
func SeriesBounds(prices []float64) (low, high float64, err error) {
	if len(prices) == 0 {
		return 0, 0, errors.New("no prices provided")
	}
	low = math.Inf(1)
	high = math.Inf(-1)
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return 0, 0, fmt.Errorf("%w at index %d: %v", ErrNonFinite, i, p)
		}
		if p < low {
			low = p
		}
		if p > high {
			high = p
		}
	}
	return low, high, nil
}

// DayRange scans the bars of the most recent UTC calendar day and returns
// them as a "<low> - <high>" string. Bars without a low/high fall back to
// their close.
func DayRange(quotes []model.Quote) (string, error) {
	if len(quotes) == 0 {
		return "", errors.New("no quotes provided")
	}
	ly, lm, ld := quotes[len(quotes)-1].Time().Date()

	low := math.Inf(1)
	high := math.Inf(-1)
	for i := len(quotes) - 1; i >= 0; i-- {
		q := quotes[i]
		y, m, d := q.Time().Date()
		if y != ly || m != lm || d != ld {
			break
		}
		lo, hi := q.Low, q.High
		if lo == 0 {
			lo = q.Close
		}
		if hi == 0 {
			hi = q.Close
		}
		if lo < low {
			low = lo
		}
		if hi > high {
			high = hi
		}
	}
	return FormatDayRange(low, high), nil
}

// FormatDayRange renders low and high in the provider's "<low> - <high>" form.
func FormatDayRange(low, high float64) string {
	return fmt.Sprintf("%s - %s",
		strconv.FormatFloat(low, 'f', 2, 64),
		strconv.FormatFloat(high, 'f', 2, 64))
}

package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const rangeSeparator = " - "

// DayRangeTicks parses a "<low> - <high>" day range and returns its
// 0/25/50/75/100 percentile points. low > high is not rejected; the ticks
// then descend.
func DayRangeTicks(s string) ([5]float64, error) {
	var ticks [5]float64
	parts := strings.Split(strings.TrimSpace(s), rangeSeparator)
	if len(parts) != 2 {
		return ticks, fmt.Errorf("%w: %q", ErrMalformedRangeString, s)
	}
	low, err := parseBound(parts[0])
	if err != nil {
		return ticks, err
	}
	high, err := parseBound(parts[1])
	if err != nil {
		return ticks, err
	}
	mid := (low + high) / 2
	step := (mid - low) / 2
	ticks = [5]float64{low, low + step, mid, mid + step, high}
	return ticks, nil
}

func parseBound(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNumberParse, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrNumberParse, s)
	}
	return v, nil
}

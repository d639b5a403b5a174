package model

import (
	"errors"
	"fmt"
	"strings"
)

// RangeSelector is one of the fixed time-window codes understood by the provider.
type RangeSelector string

const (
	Range1d  RangeSelector = "1d"
	Range5d  RangeSelector = "5d"
	Range1wk RangeSelector = "1wk"
	Range1mo RangeSelector = "1mo"
	Range3mo RangeSelector = "3mo"
	Range6mo RangeSelector = "6mo"
	Range1y  RangeSelector = "1y"
	Range2y  RangeSelector = "2y"
	Range5y  RangeSelector = "5y"
	Range10y RangeSelector = "10y"
	RangeYtd RangeSelector = "ytd"
	RangeMax RangeSelector = "max"
)

// ErrUnknownRange is returned by ParseRange for codes outside the fixed set.
var ErrUnknownRange = errors.New("unknown range")

var ranges = []RangeSelector{
	Range1d, Range5d, Range1wk, Range1mo,
	Range3mo, Range6mo, Range1y, Range2y,
	Range5y, Range10y, RangeYtd, RangeMax,
}

// sampling interval requested from the provider for each range
var intervals = map[RangeSelector]string{
	Range1d:  "30m",
	Range5d:  "1h",
	Range1wk: "1h",
	Range1mo: "1d",
	Range3mo: "1d",
	Range6mo: "1d",
	Range1y:  "1d",
	Range2y:  "1d",
	Range5y:  "1wk",
	Range10y: "1wk",
	RangeYtd: "1d",
	RangeMax: "1mo",
}

// Ranges returns all known range codes, shortest window first.
func Ranges() []RangeSelector {
	out := make([]RangeSelector, len(ranges))
	copy(out, ranges)
	return out
}

// ParseRange validates s as a range code. Surrounding whitespace is ignored.
func ParseRange(s string) (RangeSelector, error) {
	r := RangeSelector(strings.TrimSpace(s))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRange, s)
	}
	return r, nil
}

// Valid reports whether r is one of the known range codes.
func (r RangeSelector) Valid() bool {
	_, ok := intervals[r]
	return ok
}

// Interval returns the provider sampling interval for r, or "" if r is unknown.
func (r RangeSelector) Interval() string {
	return intervals[r]
}

func (r RangeSelector) String() string { return string(r) }

package model

import (
	"errors"
	"fmt"
	"strings"
)

// ChartBundle is the render-agnostic output of one chart build.
// It is value data and is never mutated after construction.
type ChartBundle struct {
	Symbol       string
	Range        RangeSelector
	Currency     string
	Height       int
	XLabels      []string   // adjacent duplicates collapsed
	Labels       []string   // one label per quote, before collapsing
	YTicks       [5]float64 // 0/25/50/75/100 percentile points of the day range
	TickLabels   [5]string
	ScaledPoints []float64 // one per quote, in [0, Height-margin]
	LastPrice    string
}

// ChartRequest names the symbol, range and pixel height of one chart build.
type ChartRequest struct {
	Symbol string
	Range  RangeSelector
	Height int
}

// NewChartRequest builds a validated chart request. The symbol is upper-cased.
func NewChartRequest(symbol string, rng RangeSelector, height int) (ChartRequest, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return ChartRequest{}, errors.New("symbol is required")
	}
	if !rng.Valid() {
		return ChartRequest{}, fmt.Errorf("%w: %q", ErrUnknownRange, rng)
	}
	if height <= 0 {
		return ChartRequest{}, fmt.Errorf("height must be positive, got %d", height)
	}
	return ChartRequest{Symbol: symbol, Range: rng, Height: height}, nil
}

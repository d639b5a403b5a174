package chart

import (
	"errors"
	"fmt"

	"Stox/internal/calculator"
)

var (
	// ErrUnimplementedRange is returned when a range code has no bucketing rule.
	ErrUnimplementedRange = errors.New("unimplemented range")
	// ErrInvalidTimestamp is returned for timestamps outside years 0001-9999.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrMalformedRangeString is returned when a day range is not "<low> - <high>".
	ErrMalformedRangeString = errors.New("malformed range string")
	// ErrNumberParse is returned when a day range bound is not a finite number.
	ErrNumberParse = errors.New("number parse error")
	// ErrEmptySeries is returned when no quotes are supplied.
	ErrEmptySeries = errors.New("empty series")
	// ErrInvalidHeight is returned when the target pixel height is not positive.
	ErrInvalidHeight = errors.New("invalid height")
	// ErrNonFinitePrice is returned when a close is NaN or infinite.
	ErrNonFinitePrice = calculator.ErrNonFinite
)

// Stage names the step of a chart build that failed.
type Stage string

const (
	StageSeries Stage = "series"
	StageLabels Stage = "labels"
	StageTicks  Stage = "ticks"
	StageScale  Stage = "scale"
)

// BuildError is the single failure reported by Assemble. It wraps exactly one
// of the package's sentinel errors.
type BuildError struct {
	Symbol string
	Stage  Stage
	Err    error
}

func (e *BuildError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("build chart: %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("build chart %s: %s: %v", e.Symbol, e.Stage, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

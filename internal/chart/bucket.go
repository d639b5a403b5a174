package chart

import (
	"fmt"
	"strconv"
	"time"

	"Stox/internal/model"
)

// representable calendar instants: years 0001 through 9999, UTC
var (
	minTimestamp = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxTimestamp = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// Label converts a single timestamp into its axis label for rng.
//
// The granularity depends on the width of the window: hours for a day,
// day/month up to a month, month up to two years and the year beyond.
// All calendar math is done in UTC.
func Label(ts int64, rng model.RangeSelector) (string, error) {
	kind, err := labelKind(rng)
	if err != nil {
		return "", err
	}
	if ts < minTimestamp || ts > maxTimestamp {
		return "", fmt.Errorf("%w: %d", ErrInvalidTimestamp, ts)
	}
	t := time.Unix(ts, 0).UTC()
	switch kind {
	case labelHour:
		return strconv.Itoa(t.Hour()) + ":00", nil
	case labelDayMonth:
		return strconv.Itoa(t.Day()) + "/" + strconv.Itoa(int(t.Month())), nil
	case labelMonth:
		return strconv.Itoa(int(t.Month())), nil
	default:
		return fmt.Sprintf("%04d", t.Year()), nil
	}
}

// Bucket labels every timestamp for rng. The result has exactly one entry per
// timestamp. An unknown range fails even when timestamps is empty.
func Bucket(timestamps []int64, rng model.RangeSelector) ([]string, error) {
	if _, err := labelKind(rng); err != nil {
		return nil, err
	}
	labels := make([]string, len(timestamps))
	for i, ts := range timestamps {
		l, err := Label(ts, rng)
		if err != nil {
			return nil, fmt.Errorf("timestamp %d of %d: %w", i, len(timestamps), err)
		}
		labels[i] = l
	}
	return labels, nil
}

// Dedup collapses runs of identical adjacent labels into one. Non-adjacent
// duplicates are kept.
func Dedup(labels []string) []string {
	out := make([]string, 0, len(labels))
	for i, l := range labels {
		if i > 0 && labels[i-1] == l {
			continue
		}
		out = append(out, l)
	}
	return out
}

// AxisLabels is Bucket followed by Dedup.
func AxisLabels(timestamps []int64, rng model.RangeSelector) ([]string, error) {
	labels, err := Bucket(timestamps, rng)
	if err != nil {
		return nil, err
	}
	return Dedup(labels), nil
}

type labelGranularity int

const (
	labelHour labelGranularity = iota
	labelDayMonth
	labelMonth
	labelYear
)

func labelKind(rng model.RangeSelector) (labelGranularity, error) {
	switch rng {
	case model.Range1d:
		return labelHour, nil
	case model.Range5d, model.Range1wk, model.Range1mo:
		return labelDayMonth, nil
	case model.Range3mo, model.Range6mo, model.Range1y, model.Range2y:
		return labelMonth, nil
	case model.Range5y, model.Range10y, model.RangeYtd, model.RangeMax:
		return labelYear, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnimplementedRange, string(rng))
	}
}

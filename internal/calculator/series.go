package calculator

import "Stox/internal/model"

// Closes extracts the closing prices of quotes, in order.
func Closes(quotes []model.Quote) []float64 {
	closes := make([]float64, len(quotes))
	for i, q := range quotes {
		closes[i] = q.Close
	}
	return closes
}

// Timestamps extracts the timestamps of quotes, in order.
func Timestamps(quotes []model.Quote) []int64 {
	ts := make([]int64, len(quotes))
	for i, q := range quotes {
		ts[i] = q.Timestamp
	}
	return ts
}

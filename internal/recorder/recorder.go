package recorder

import "time"

// RefreshEvent records the outcome of one watchlist refresh.
type RefreshEvent struct {
	Symbol     string
	Generation uint64
	Price      string // formatted, empty on failure
	Last       float64
	Change     float64
	OK         bool
	Stale      bool // result arrived after a newer request and was dropped
	Error      string
	At         time.Time
}

// ChartEvent records one chart build attempt.
type ChartEvent struct {
	Symbol string
	Range  string
	Height int
	Points int
	Labels int
	Stage  string // failing step, empty on success
	Error  string
	At     time.Time
}

// Recorder persists a history of refreshes and chart builds for analysis.
// It is never read back to serve quotes.
type Recorder interface {
	RecordRefresh(evt *RefreshEvent) error
	RecordChart(evt *ChartEvent) error
	Close() error
}

func unixOrNow(t time.Time) int64 {
	if t.IsZero() {
		return time.Now().Unix()
	}
	return t.Unix()
}

package model

import "time"

// QuoteSummary is the headline view of a symbol: latest price and daily change.
type QuoteSummary struct {
	Symbol        string
	ShortName     string
	Currency      string
	Last          float64
	Price         string // Last formatted for display in Currency
	Change        float64
	ChangePercent float64
	FetchedAt     time.Time
}

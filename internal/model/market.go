package model

import "time"

// Quote is a single sample of a symbol's price series.
// Open, High, Low and Volume are zero when the provider omits them.
type Quote struct {
	Timestamp int64
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// Time returns the quote timestamp as a UTC time.
func (q Quote) Time() time.Time {
	return time.Unix(q.Timestamp, 0).UTC()
}

// Series holds one symbol's price data for a single range, as returned by a fetcher.
type Series struct {
	Symbol        string
	ShortName     string
	Range         RangeSelector
	Interval      string
	Currency      string
	DayRange      string // "<low> - <high>"
	PreviousClose float64
	ValidRanges   []string
	Quotes        []Quote
	FetchedAt     time.Time
}

// Last returns the most recent quote, or false if the series is empty.
func (s *Series) Last() (Quote, bool) {
	if s == nil || len(s.Quotes) == 0 {
		return Quote{}, false
	}
	return s.Quotes[len(s.Quotes)-1], true
}

// SearchResult is one match from a ticker search.
type SearchResult struct {
	Symbol    string
	ShortName string
	Exchange  string
	QuoteType string
}

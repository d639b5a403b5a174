package collector

import (
	"context"

	"Stox/internal/model"
)

// Fetcher defines the interface for fetching quote data from a provider.
type Fetcher interface {
	FetchChart(ctx context.Context, symbol, interval string, rng model.RangeSelector) (*model.Series, error)
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
	Name() string
}

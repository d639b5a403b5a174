package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Stox/internal/chart"
	"Stox/internal/model"
)

// recordingFetcher wraps MockFetcher and remembers the last chart request.
type recordingFetcher struct {
	MockFetcher
	symbol   string
	interval string
	rng      model.RangeSelector
	searches int
}

func (r *recordingFetcher) FetchChart(ctx context.Context, symbol, interval string, rng model.RangeSelector) (*model.Series, error) {
	r.symbol, r.interval, r.rng = symbol, interval, rng
	return r.MockFetcher.FetchChart(ctx, symbol, interval, rng)
}

func (r *recordingFetcher) Search(ctx context.Context, q string) ([]model.SearchResult, error) {
	r.searches++
	return r.MockFetcher.Search(ctx, q)
}

func TestCollector_Chart(t *testing.T) {
	f := &recordingFetcher{MockFetcher: MockFetcher{Price: 100, Currency: "USD"}}
	c := NewCollector(f)

	req, err := model.NewChartRequest("aapl", model.Range5d, 200)
	require.NoError(t, err)

	b, err := c.Chart(t.Context(), req)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", b.Symbol)
	assert.Equal(t, "1h", f.interval)
	assert.Equal(t, model.Range5d, f.rng)
	assert.Len(t, b.ScaledPoints, 48)
	assert.Len(t, b.Labels, 48)
	for _, p := range b.ScaledPoints {
		assert.LessOrEqual(t, p, float64(200-chart.Margin))
	}
}

func TestCollector_Chart_EmptySeries(t *testing.T) {
	c := NewCollector(&MockFetcher{Quotes: []model.Quote{}, Currency: "USD"})
	req, err := model.NewChartRequest("AAPL", model.Range1d, 100)
	require.NoError(t, err)

	b, err := c.Chart(t.Context(), req)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, chart.ErrEmptySeries)
}

func TestCollector_Chart_FetchError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCollector(&MockFetcher{Err: boom})
	req, err := model.NewChartRequest("AAPL", model.Range1d, 100)
	require.NoError(t, err)

	_, err = c.Chart(t.Context(), req)
	assert.ErrorIs(t, err, boom)

	var be *chart.BuildError
	assert.False(t, errors.As(err, &be))
}

func TestCollector_Series_NormalizesSymbol(t *testing.T) {
	f := &recordingFetcher{MockFetcher: MockFetcher{Price: 100, Currency: "USD"}}
	c := NewCollector(f)

	s, err := c.Series(t.Context(), "  msft ", model.Range1mo)
	require.NoError(t, err)
	assert.Equal(t, "MSFT", f.symbol)
	assert.Equal(t, "MSFT", s.Symbol)

	_, err = c.ValidRanges(t.Context(), "tsla")
	require.NoError(t, err)
	assert.Equal(t, "TSLA", f.symbol)
}

func TestCollector_Series_UnknownRange(t *testing.T) {
	c := NewCollector(&MockFetcher{Price: 1})
	_, err := c.Series(t.Context(), "AAPL", "7h")
	assert.ErrorIs(t, err, model.ErrUnknownRange)
}

func TestCollector_Summary(t *testing.T) {
	now := time.Now().UTC().Unix()
	f := &recordingFetcher{MockFetcher: MockFetcher{
		Price:    100,
		Currency: "USD",
		Quotes:   []model.Quote{{Timestamp: now - 3600, Close: 101}, {Timestamp: now, Close: 150.005}},
		Results:  []model.SearchResult{{Symbol: "AAPL", ShortName: "Apple Inc."}},
	}}
	c := NewCollector(f)

	sum, err := c.Summary(t.Context(), " aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", sum.Symbol)
	assert.Equal(t, "$150.01", sum.Price)
	assert.Equal(t, "Apple Inc.", sum.ShortName)
	assert.InDelta(t, 50.005, sum.Change, 1e-9)
	assert.InDelta(t, 50.005, sum.ChangePercent, 1e-9)
	assert.Equal(t, summaryInterval, f.interval)
	assert.Equal(t, 1, f.searches)
}

func TestCollector_Summary_UsesProviderShortName(t *testing.T) {
	f := &recordingFetcher{MockFetcher: MockFetcher{Price: 10, Currency: "EUR", ShortName: "Siemens AG"}}
	sum, err := NewCollector(f).Summary(t.Context(), "SIE.DE")
	require.NoError(t, err)
	assert.Equal(t, "Siemens AG", sum.ShortName)
	assert.Zero(t, f.searches)
}

func TestCollector_Summary_SearchFailureKeepsPlaceholder(t *testing.T) {
	f := &recordingFetcher{MockFetcher: MockFetcher{Price: 10, Currency: "XYZ"}}
	sum, err := NewCollector(f).Summary(t.Context(), "ABC")
	require.NoError(t, err)
	assert.Equal(t, NotAvailable, sum.ShortName)
}

func TestCollector_Summary_NoQuotes(t *testing.T) {
	_, err := NewCollector(&MockFetcher{Quotes: []model.Quote{}}).Summary(t.Context(), "AAPL")
	assert.Error(t, err)
}

func TestCollector_Search(t *testing.T) {
	c := NewCollector(&MockFetcher{Results: []model.SearchResult{{Symbol: "AAPL"}}})

	got, err := c.Search(t.Context(), "  ")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = c.Search(t.Context(), "apple")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCollector_ValidRanges(t *testing.T) {
	got, err := NewCollector(&MockFetcher{Price: 1}).ValidRanges(t.Context(), "AAPL")
	require.NoError(t, err)
	assert.Contains(t, got, "1d")
}

package collector

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"Stox/internal/calculator"
	"Stox/internal/chart"
	"Stox/internal/model"
)

// summaryInterval is the sampling interval used for headline quotes.
const summaryInterval = "1h"

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	Currency  string
	ShortName string
	Quotes    []model.Quote
	Results   []model.SearchResult
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchChart(_ context.Context, symbol, interval string, rng model.RangeSelector) (*model.Series, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	quotes := m.Quotes
	if quotes == nil {
		quotes = generateMockQuotes(m.Price, 48, 30*time.Minute)
	}
	s := &model.Series{
		Symbol:        strings.ToUpper(symbol),
		ShortName:     m.ShortName,
		Range:         rng,
		Interval:      interval,
		Currency:      m.Currency,
		PreviousClose: m.Price,
		ValidRanges:   []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"},
		Quotes:        quotes,
		FetchedAt:     time.Now(),
	}
	if len(quotes) > 0 {
		s.DayRange, _ = calculator.DayRange(quotes)
	}
	return s, nil
}

func (m *MockFetcher) Search(_ context.Context, _ string) ([]model.SearchResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

func generateMockQuotes(basePrice float64, count int, step time.Duration) []model.Quote {
	end := time.Now().UTC().Truncate(step)
	quotes := make([]model.Quote, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		quotes[i] = model.Quote{
			Timestamp: end.Add(-time.Duration(count-1-i) * step).Unix(),
			Open:      p * 0.999,
			High:      p * 1.005,
			Low:       p * 0.995,
			Close:     p,
			Volume:    1000000,
		}
	}
	return quotes
}

// Collector orchestrates data fetching and chart assembly.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Series fetches the quote series for symbol over rng.
func (c *Collector) Series(ctx context.Context, symbol string, rng model.RangeSelector) (*model.Series, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !rng.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownRange, rng)
	}
	s, err := c.Fetcher.FetchChart(ctx, symbol, rng.Interval(), rng)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %s: %w", symbol, rng, err)
	}
	return s, nil
}

// Chart fetches the series for req and assembles it into a chart bundle.
// Fetch failures are returned wrapped; assembly failures as *chart.BuildError.
func (c *Collector) Chart(ctx context.Context, req model.ChartRequest) (*model.ChartBundle, error) {
	s, err := c.Series(ctx, req.Symbol, req.Range)
	if err != nil {
		return nil, err
	}
	return chart.Assemble(chart.InputFromSeries(s, req.Height))
}

// Summary fetches the latest price and daily change for symbol.
func (c *Collector) Summary(ctx context.Context, symbol string) (*model.QuoteSummary, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	s, err := c.Fetcher.FetchChart(ctx, symbol, summaryInterval, model.Range1d)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	last, ok := s.Last()
	if !ok {
		return nil, fmt.Errorf("fetch %s: no quotes", symbol)
	}

	sum := &model.QuoteSummary{
		Symbol:    symbol,
		ShortName: s.ShortName,
		Currency:  s.Currency,
		Last:      last.Close,
		Price:     chart.FormatMoney(last.Close, s.Currency),
		FetchedAt: s.FetchedAt,
	}

	if sum.ShortName == "" || sum.ShortName == NotAvailable {
		if name, err := c.shortName(ctx, symbol); err != nil {
			log.Printf("[WARN] short name lookup for %s failed: %v", symbol, err)
			sum.ShortName = NotAvailable
		} else {
			sum.ShortName = name
		}
	}

	if abs, pct, err := calculator.DailyChange(s.PreviousClose, last.Close); err != nil {
		log.Printf("[WARN] daily change for %s unavailable: %v", symbol, err)
	} else {
		sum.Change = abs
		sum.ChangePercent = pct
	}
	return sum, nil
}

func (c *Collector) shortName(ctx context.Context, symbol string) (string, error) {
	results, err := c.Fetcher.Search(ctx, symbol)
	if err != nil {
		return "", err
	}
	for _, r := range results {
		if r.Symbol == symbol && r.ShortName != "" {
			return r.ShortName, nil
		}
	}
	if len(results) > 0 && results[0].ShortName != "" {
		return results[0].ShortName, nil
	}
	return "", fmt.Errorf("no search results for %s", symbol)
}

// Search looks up tickers matching query.
func (c *Collector) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	results, err := c.Fetcher.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return results, nil
}

// ValidRanges returns the range codes the provider supports for symbol.
func (c *Collector) ValidRanges(ctx context.Context, symbol string) ([]string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	s, err := c.Fetcher.FetchChart(ctx, symbol, summaryInterval, model.Range1d)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	return s.ValidRanges, nil
}

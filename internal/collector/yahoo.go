package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"Stox/internal/calculator"
	"Stox/internal/model"
)

const (
	yahooChartBaseURL  = "https://query1.finance.yahoo.com"
	yahooSearchBaseURL = "https://query2.finance.yahoo.com"
)

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	Client        HTTPClient
	ChartBaseURL  string
	SearchBaseURL string
	SymbolMap     map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		ChartBaseURL:  yahooChartBaseURL,
		SearchBaseURL: yahooSearchBaseURL,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Meta fields are read separately with gjson.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// at returns vals[i], or 0 when the provider sent null or a short array.
func at(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

func (f *YahooFetcher) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// FetchChart returns the quote series for symbol sampled at interval over rng.
// Bars with a null close (holidays, halted sessions) are skipped.
func (f *YahooFetcher) FetchChart(ctx context.Context, symbol, interval string, rng model.RangeSelector) (*model.Series, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.ChartBaseURL, url.PathEscape(f.yahooSymbol(symbol)), url.QueryEscape(interval), url.QueryEscape(string(rng)))

	body, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote indicators returned")
	}
	quote := result.Indicators.Quote[0]
	quotes := make([]model.Quote, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		quotes = append(quotes, model.Quote{
			Timestamp: ts,
			Open:      at(quote.Open, i),
			High:      at(quote.High, i),
			Low:       at(quote.Low, i),
			Close:     *quote.Close[i],
			Volume:    at(quote.Volume, i),
		})
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("yahoo: no price data")
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Timestamp < quotes[j].Timestamp })

	meta := gjson.GetBytes(body, "chart.result.0.meta")
	series := &model.Series{
		Symbol:        symbol,
		ShortName:     fieldOr(meta, "shortName", textField(meta, "longName"), asString),
		Range:         rng,
		Interval:      interval,
		Currency:      codeField(meta, "currency"),
		PreviousClose: fieldOr(meta, "chartPreviousClose", fieldOr(meta, "previousClose", 0, asFloat), asFloat),
		ValidRanges:   fieldOr(meta, "validRanges", []string(nil), asStrings),
		Quotes:        quotes,
		FetchedAt:     time.Now(),
	}

	low := fieldOr(meta, "regularMarketDayLow", math.NaN(), asFloat)
	high := fieldOr(meta, "regularMarketDayHigh", math.NaN(), asFloat)
	if !math.IsNaN(low) && !math.IsNaN(high) {
		series.DayRange = calculator.FormatDayRange(low, high)
	} else if dr, err := calculator.DayRange(quotes); err == nil {
		series.DayRange = dr
	}
	return series, nil
}

// Search looks up tickers matching query.
func (f *YahooFetcher) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=10&newsCount=0",
		f.SearchBaseURL, url.QueryEscape(query))

	body, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("yahoo decode: invalid search response")
	}

	var results []model.SearchResult
	gjson.GetBytes(body, "quotes").ForEach(func(_, q gjson.Result) bool {
		sym := fieldOr(q, "symbol", "", asCode)
		if sym == "" {
			return true
		}
		results = append(results, model.SearchResult{
			Symbol:    sym,
			ShortName: fieldOr(q, "shortname", textField(q, "longname"), asString),
			Exchange:  codeField(q, "exchange"),
			QuoteType: codeField(q, "quoteType"),
		})
		return true
	})
	return results, nil
}

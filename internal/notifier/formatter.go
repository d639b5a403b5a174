package notifier

import (
	"fmt"
	"strings"

	"Stox/internal/model"
)

// Unavailable is shown in place of any value that could not be fetched.
const Unavailable = "???"

// FormatSummary renders one watchlist line: symbol, name, price and the
// daily change.
func FormatSummary(s *model.QuoteSummary) string {
	return fmt.Sprintf("%-8s %-24s %14s %+10.2f (%+.2f%%)",
		s.Symbol, truncate(s.ShortName, 24), s.Price, s.Change, s.ChangePercent)
}

// FormatUnavailable renders the placeholder line for a symbol whose refresh failed.
func FormatUnavailable(symbol string) string {
	return fmt.Sprintf("%-8s %-24s %14s %10s", strings.ToUpper(symbol), Unavailable, Unavailable, Unavailable)
}

// FormatChartUnavailable is the message shown instead of a chart that failed to build.
func FormatChartUnavailable(symbol string, err error) string {
	if err == nil {
		return fmt.Sprintf("%s: chart unavailable", strings.ToUpper(symbol))
	}
	return fmt.Sprintf("%s: chart unavailable (%v)", strings.ToUpper(symbol), err)
}

func FormatSearchResults(results []model.SearchResult) string {
	if len(results) == 0 {
		return "no matches"
	}
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-10s %-32s %-8s %s", r.Symbol, truncate(r.ShortName, 32), r.Exchange, r.QuoteType)
	}
	return b.String()
}

func FormatWatchlist(symbols []string) string {
	if len(symbols) == 0 {
		return "watchlist is empty"
	}
	return strings.Join(symbols, "\n")
}

// FormatRanges lists range codes on one line.
func FormatRanges(ranges []string) string {
	if len(ranges) == 0 {
		return Unavailable
	}
	return strings.Join(ranges, " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

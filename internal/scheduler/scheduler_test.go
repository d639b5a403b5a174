package scheduler

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Stox/internal/collector"
	"Stox/internal/model"
	"Stox/internal/notifier"
	"Stox/internal/recorder"
	"Stox/internal/watchlist"
)

type memRecorder struct {
	recorder.NoopRecorder
	mu     sync.Mutex
	events []recorder.RefreshEvent
}

func (m *memRecorder) RecordRefresh(evt *recorder.RefreshEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *evt)
	return nil
}

// symbolFetcher fails for symbols in fail and runs hook before answering.
type symbolFetcher struct {
	collector.MockFetcher
	fail map[string]bool
	hook func(symbol string)
}

func (f *symbolFetcher) FetchChart(ctx context.Context, symbol, interval string, rng model.RangeSelector) (*model.Series, error) {
	if f.hook != nil {
		f.hook(symbol)
	}
	if f.fail[symbol] {
		return nil, errors.New("provider down")
	}
	return f.MockFetcher.FetchChart(ctx, symbol, interval, rng)
}

func newTestScheduler(t *testing.T, f collector.Fetcher, symbols ...string) (*Scheduler, *bytes.Buffer, *memRecorder) {
	t.Helper()
	wl := watchlist.NewManager(watchlist.NewStore(t.TempDir(), false))
	for _, s := range symbols {
		require.NoError(t, wl.Add(s))
	}
	var out bytes.Buffer
	rec := &memRecorder{}
	s := NewScheduler(context.Background(), collector.NewCollector(f), wl, notifier.NewWriterNotifier(&out), rec, 2)
	return s, &out, rec
}

func TestRefreshNow_FormatsEachSymbolInOrder(t *testing.T) {
	f := &symbolFetcher{
		MockFetcher: collector.MockFetcher{Price: 100, Currency: "USD", ShortName: "Test Corp"},
		fail:        map[string]bool{"MSFT": true},
	}
	s, out, rec := newTestScheduler(t, f, "AAPL", "MSFT", "TSLA")

	lines := s.RefreshNow(context.Background())
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "AAPL"))
	assert.Contains(t, lines[0], "$")
	assert.Equal(t, notifier.FormatUnavailable("MSFT"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "TSLA"))

	assert.Equal(t, strings.Join(lines, "\n")+"\n", out.String())

	require.Len(t, rec.events, 3)
	failed := 0
	for _, e := range rec.events {
		if !e.OK {
			failed++
			assert.Equal(t, "MSFT", e.Symbol)
			assert.Contains(t, e.Error, "provider down")
		}
	}
	assert.Equal(t, 1, failed)
}

func TestRefreshNow_EmptyWatchlistSendsNothing(t *testing.T) {
	s, out, _ := newTestScheduler(t, &collector.MockFetcher{Price: 1})
	assert.Nil(t, s.RefreshNow(context.Background()))
	assert.Empty(t, out.String())
}

func TestRefreshNow_DropsStaleResults(t *testing.T) {
	f := &symbolFetcher{MockFetcher: collector.MockFetcher{Price: 100, Currency: "USD", ShortName: "Test Corp"}}
	s, out, rec := newTestScheduler(t, f, "AAPL")
	// A newer request for the symbol arrives while the fetch is in flight.
	f.hook = func(symbol string) { s.Generations.Next(symbol) }

	assert.Nil(t, s.RefreshNow(context.Background()))
	assert.Empty(t, out.String())
	require.Len(t, rec.events, 1)
	assert.True(t, rec.events[0].Stale)
	assert.False(t, rec.events[0].OK)
}

func TestGenerations(t *testing.T) {
	g := NewGenerations()
	a1 := g.Next("AAPL")
	m1 := g.Next("MSFT")
	assert.True(t, g.Current(a1))

	a2 := g.Next("AAPL")
	assert.False(t, g.Current(a1))
	assert.True(t, g.Current(a2))
	assert.True(t, g.Current(m1), "keys are independent")
	assert.Equal(t, uint64(2), a2.Generation())
	assert.Equal(t, "AAPL", a2.Key())
}

func TestGenerations_Concurrent(t *testing.T) {
	g := NewGenerations()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Next("AAPL")
		}()
	}
	wg.Wait()
	assert.True(t, g.Current(g.Next("AAPL")))
	assert.Equal(t, uint64(52), g.Next("AAPL").Generation())
}

func TestHandleCommand(t *testing.T) {
	f := &collector.MockFetcher{Price: 100, Currency: "USD", ShortName: "Test Corp"}
	s, _, _ := newTestScheduler(t, f)
	ctx := context.Background()

	assert.Equal(t, "watchlist is empty", s.HandleCommand(ctx, "/list"))
	assert.Equal(t, "AAPL", s.HandleCommand(ctx, "/add aapl"))
	assert.Equal(t, "AAPL\nMSFT", s.HandleCommand(ctx, "/add MSFT"))
	assert.Equal(t, "MSFT", s.HandleCommand(ctx, "/remove AAPL"))
	assert.Contains(t, s.HandleCommand(ctx, "/quote TSLA"), "Test Corp")
	assert.Equal(t, "usage: /quote SYMBOL", s.HandleCommand(ctx, "/quote"))
	assert.Contains(t, s.HandleCommand(ctx, "hello"), "/refresh")
	assert.Empty(t, s.HandleCommand(ctx, "  "))

	f.Err = errors.New("down")
	assert.Equal(t, notifier.FormatUnavailable("TSLA"), s.HandleCommand(ctx, "/quote tsla"))
}

func TestRegisterRefresh(t *testing.T) {
	s, _, _ := newTestScheduler(t, &collector.MockFetcher{Price: 1})
	require.NoError(t, s.RegisterRefresh("0 * * * * *"))
	assert.Error(t, s.RegisterRefresh("not a cron"))
	s.Start()
	s.Stop()
}

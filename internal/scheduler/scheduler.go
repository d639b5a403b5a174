package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"Stox/internal/collector"
	"Stox/internal/notifier"
	"Stox/internal/recorder"
	"Stox/internal/watchlist"
)

// Scheduler refreshes the watchlist on a cron schedule.
type Scheduler struct {
	Cron        *cron.Cron
	Collector   *collector.Collector
	Watchlist   *watchlist.Manager
	Notifier    notifier.Notifier
	Recorder    recorder.Recorder
	Generations *Generations
	Concurrency int
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, wl *watchlist.Manager, n notifier.Notifier, rec recorder.Recorder, concurrency int) *Scheduler {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Collector:   col,
		Watchlist:   wl,
		Notifier:    n,
		Recorder:    rec,
		Generations: NewGenerations(),
		Concurrency: concurrency,
		Ctx:         ctx,
	}
}

// RegisterRefresh schedules the watchlist refresh.
func (s *Scheduler) RegisterRefresh(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running refreshes.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) refreshTask() {
	s.RefreshNow(s.Ctx)
}

// RefreshNow refreshes every watchlist symbol and sends one message with a
// line per symbol. Failed symbols get the placeholder line. Results that
// were overtaken by a newer refresh of the same symbol are dropped.
// It returns the lines that were sent.
func (s *Scheduler) RefreshNow(ctx context.Context) []string {
	symbols := s.Watchlist.List()
	if len(symbols) == 0 {
		log.Println("[INFO] watchlist is empty, nothing to refresh")
		return nil
	}
	log.Printf("[INFO] refreshing %d symbols", len(symbols))

	lines := make([]string, len(symbols))
	var g errgroup.Group
	g.SetLimit(s.Concurrency)
	for i, sym := range symbols {
		g.Go(func() error {
			lines[i] = s.refreshOne(ctx, sym)
			return nil
		})
	}
	_ = g.Wait()

	out := lines[:0]
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil
	}
	if err := s.Notifier.Send(ctx, strings.Join(out, "\n")); err != nil {
		log.Printf("[ERROR] send refresh: %v", err)
	}
	return out
}

// refreshOne returns the display line for symbol, or "" when the result is stale.
func (s *Scheduler) refreshOne(ctx context.Context, symbol string) string {
	token := s.Generations.Next(symbol)
	sum, err := s.Collector.Summary(ctx, symbol)

	evt := &recorder.RefreshEvent{
		Symbol:     symbol,
		Generation: token.Generation(),
		At:         time.Now(),
	}
	defer func() {
		if rerr := s.Recorder.RecordRefresh(evt); rerr != nil {
			log.Printf("[ERROR] record refresh: %v", rerr)
		}
	}()

	if !s.Generations.Current(token) {
		log.Printf("[INFO] dropping stale refresh of %s (generation %d)", symbol, token.Generation())
		evt.Stale = true
		return ""
	}
	if err != nil {
		log.Printf("[WARN] refresh %s: %v", symbol, err)
		evt.Error = err.Error()
		return notifier.FormatUnavailable(symbol)
	}

	evt.OK = true
	evt.Price = sum.Price
	evt.Last = sum.Last
	evt.Change = sum.Change
	return notifier.FormatSummary(sum)
}

// HandleCommand answers a chat command and returns the reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch strings.ToLower(fields[0]) {
	case "/list":
		return notifier.FormatWatchlist(s.Watchlist.List())
	case "/refresh":
		s.RefreshNow(ctx)
		return ""
	case "/quote":
		if arg == "" {
			return "usage: /quote SYMBOL"
		}
		sum, err := s.Collector.Summary(ctx, arg)
		if err != nil {
			log.Printf("[WARN] quote %s: %v", arg, err)
			return notifier.FormatUnavailable(arg)
		}
		return notifier.FormatSummary(sum)
	case "/add":
		if arg == "" {
			return "usage: /add SYMBOL"
		}
		if err := s.Watchlist.Add(arg); err != nil {
			return fmt.Sprintf("add %s failed: %v", arg, err)
		}
		return notifier.FormatWatchlist(s.Watchlist.List())
	case "/remove":
		if arg == "" {
			return "usage: /remove SYMBOL"
		}
		if err := s.Watchlist.Remove(arg); err != nil {
			return fmt.Sprintf("remove %s failed: %v", arg, err)
		}
		return notifier.FormatWatchlist(s.Watchlist.List())
	default:
		return "commands:\n/list\n/refresh\n/quote SYMBOL\n/add SYMBOL\n/remove SYMBOL"
	}
}

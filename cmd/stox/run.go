package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"Stox/internal/notifier"
	"Stox/internal/scheduler"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Refresh the watchlist on a schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, a)
		}),
	}
}

func run(ctx context.Context, a *app) error {
	sinks := notifier.Multi{notifier.NewWriterNotifier(a.out)}
	var tn *notifier.TelegramNotifier
	if a.cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy)
		sinks = append(sinks, tn)
	}

	sched := scheduler.NewScheduler(ctx, a.col, a.watch, sinks, a.rec, a.cfg.Refresh.Concurrency)
	if err := sched.RegisterRefresh(a.cfg.Refresh.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	sched.RefreshNow(ctx)

	log.Println("[INFO] stox is running. Press Ctrl+C to stop.")
	<-ctx.Done()
	log.Println("[INFO] shutdown signal received, stopping...")
	return nil
}

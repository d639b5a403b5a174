package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"Stox/internal/collector"
	"Stox/internal/config"
	"Stox/internal/model"
	"Stox/internal/recorder"
	"Stox/internal/watchlist"
)

// app holds the collaborators shared by every subcommand.
type app struct {
	cfg   *config.Config
	col   *collector.Collector
	watch *watchlist.Manager
	rec   recorder.Recorder
	out   io.Writer
}

type rootFlags struct {
	configPath string
	mock       bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{configPath: "configs/config.yaml"}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		flags.configPath = v
	}

	cmd := &cobra.Command{
		Use:          "stox",
		Short:        "Stock quotes, charts and a saved watchlist from the terminal",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", flags.configPath, "path to config file")
	cmd.PersistentFlags().BoolVar(&flags.mock, "mock", false, "serve generated quotes instead of calling the provider")

	cmd.AddCommand(
		newQuoteCmd(flags),
		newChartCmd(flags),
		newSearchCmd(flags),
		newRangesCmd(flags),
		newWatchCmd(flags),
		newRunCmd(flags),
	)
	return cmd
}

// newApp loads configuration and wires the collaborators.
func newApp(cmd *cobra.Command, flags *rootFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	var fetcher collector.Fetcher
	if flags.mock {
		fetcher = newMockFetcher()
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	return &app{
		cfg:   cfg,
		col:   collector.NewCollector(fetcher),
		watch: watchlist.NewManager(watchlist.NewStore(cfg.Persistence.DataHome, cfg.Persistence.Disabled)),
		rec:   rec,
		out:   cmd.OutOrStdout(),
	}, nil
}

func (a *app) Close() {
	if err := a.rec.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
}

// withApp adapts a handler that needs the wired app into a cobra RunE.
func withApp(flags *rootFlags, run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, flags)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}

func newMockFetcher() *collector.MockFetcher {
	return &collector.MockFetcher{
		Price:     150,
		Currency:  "USD",
		ShortName: "Mock Corp",
		Results: []model.SearchResult{
			{Symbol: "MOCK", ShortName: "Mock Corp", Exchange: "NMS", QuoteType: "EQUITY"},
			{Symbol: "MOCK.L", ShortName: "Mock Corp plc", Exchange: "LSE", QuoteType: "EQUITY"},
		},
	}
}

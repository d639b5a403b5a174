package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"Stox/internal/notifier"
)

func newQuoteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "quote SYMBOL...",
		Short: "Show the latest price and daily change",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			for _, sym := range args {
				sum, err := a.col.Summary(cmd.Context(), sym)
				if err != nil {
					log.Printf("[WARN] quote %s: %v", sym, err)
					fmt.Fprintln(a.out, notifier.FormatUnavailable(sym))
					continue
				}
				fmt.Fprintln(a.out, notifier.FormatSummary(sum))
			}
			return nil
		}),
	}
}

func newSearchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Look up tickers by name or symbol",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			results, err := a.col.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, notifier.FormatSearchResults(results))
			return nil
		}),
	}
}

func newRangesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ranges SYMBOL",
		Short: "List the chart ranges the provider supports for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			ranges, err := a.col.ValidRanges(cmd.Context(), args[0])
			if err != nil {
				log.Printf("[WARN] ranges %s: %v", args[0], err)
			}
			fmt.Fprintln(a.out, notifier.FormatRanges(ranges))
			return nil
		}),
	}
}

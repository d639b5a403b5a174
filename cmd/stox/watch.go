package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Stox/internal/notifier"
)

func newWatchCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Manage saved symbols",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show saved symbols",
			Args:  cobra.NoArgs,
			RunE: withApp(flags, func(_ *cobra.Command, a *app, _ []string) error {
				fmt.Fprintln(a.out, notifier.FormatWatchlist(a.watch.List()))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add SYMBOL...",
			Short: "Save symbols",
			Args:  cobra.MinimumNArgs(1),
			RunE: withApp(flags, func(_ *cobra.Command, a *app, args []string) error {
				for _, sym := range args {
					if err := a.watch.Add(sym); err != nil {
						return err
					}
				}
				fmt.Fprintln(a.out, notifier.FormatWatchlist(a.watch.List()))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove SYMBOL...",
			Short: "Unsave symbols",
			Args:  cobra.MinimumNArgs(1),
			RunE: withApp(flags, func(_ *cobra.Command, a *app, args []string) error {
				for _, sym := range args {
					if err := a.watch.Remove(sym); err != nil {
						return err
					}
				}
				fmt.Fprintln(a.out, notifier.FormatWatchlist(a.watch.List()))
				return nil
			}),
		},
	)
	return cmd
}

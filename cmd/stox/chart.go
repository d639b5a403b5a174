package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"Stox/internal/chart"
	"Stox/internal/model"
	"Stox/internal/notifier"
	"Stox/internal/recorder"
	"Stox/internal/render"
)

type chartFlags struct {
	rng    string
	height int
	out    string
}

func newChartCmd(flags *rootFlags) *cobra.Command {
	cf := &chartFlags{}
	cmd := &cobra.Command{
		Use:   "chart SYMBOL",
		Short: "Render a price chart to an HTML file",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(flags, func(cmd *cobra.Command, a *app, args []string) error {
			return runChart(cmd, a, cf, args[0])
		}),
	}
	cmd.Flags().StringVarP(&cf.rng, "range", "r", "", "chart range (1d, 5d, 1wk, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd, max)")
	cmd.Flags().IntVar(&cf.height, "height", 0, "plot height in pixels")
	cmd.Flags().StringVarP(&cf.out, "out", "o", "", "output file (default SYMBOL-RANGE.html)")
	return cmd
}

func runChart(cmd *cobra.Command, a *app, cf *chartFlags, symbol string) error {
	rngCode := cf.rng
	if rngCode == "" {
		rngCode = a.cfg.Chart.DefaultRange
	}
	rng, err := model.ParseRange(rngCode)
	if err != nil {
		return err
	}
	height := cf.height
	if height == 0 {
		height = a.cfg.Chart.Height
	}
	req, err := model.NewChartRequest(symbol, rng, height)
	if err != nil {
		return err
	}

	out := cf.out
	if out == "" {
		out = fmt.Sprintf("%s-%s.html", strings.ReplaceAll(req.Symbol, "/", "_"), req.Range)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	evt := &recorder.ChartEvent{Symbol: req.Symbol, Range: string(req.Range), Height: req.Height, At: time.Now()}
	bundle, buildErr := a.col.Chart(cmd.Context(), req)
	if buildErr != nil {
		evt.Error = buildErr.Error()
		var be *chart.BuildError
		if errors.As(buildErr, &be) {
			evt.Stage = string(be.Stage)
		}
	} else {
		evt.Points = len(bundle.ScaledPoints)
		evt.Labels = len(bundle.XLabels)
	}
	if err := a.rec.RecordChart(evt); err != nil {
		log.Printf("[ERROR] record chart: %v", err)
	}

	if buildErr != nil {
		log.Printf("[WARN] chart %s %s: %v", req.Symbol, req.Range, buildErr)
		fmt.Fprintln(a.out, notifier.FormatChartUnavailable(req.Symbol, buildErr))
		return render.Unavailable(f, req.Symbol, req.Height)
	}
	if err := render.Line(f, bundle); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s %s -> %s\n", req.Symbol, req.Range, bundle.LastPrice, out)
	return nil
}

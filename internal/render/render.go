// Package render draws assembled chart bundles as standalone HTML pages.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"Stox/internal/chart"
	"Stox/internal/model"
)

const (
	chartWidthPx = 900
	chromePx     = 120 // title, subtitle and axis labels

	colorBackground    = "#0f172a"
	colorLine          = "#22c55e"
	colorTextPrimary   = "#e2e8f0"
	colorTextSecondary = "#94a3b8"
)

func initOpts(height int) opts.Initialization {
	return opts.Initialization{
		Theme:           types.ThemeWesteros,
		Width:           fmt.Sprintf("%dpx", chartWidthPx),
		Height:          fmt.Sprintf("%dpx", height+chromePx),
		BackgroundColor: colorBackground,
	}
}

// Line renders b as a line chart. The y axis is in scaled pixel units; the
// day range ticks and last price go in the subtitle.
func Line(w io.Writer, b *model.ChartBundle) error {
	if b == nil {
		return fmt.Errorf("render: nil bundle")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(b.Height)),
		charts.WithTitleOpts(opts.Title{
			Title:         fmt.Sprintf("%s %s  %s", b.Symbol, b.Range, b.LastPrice),
			Subtitle:      "Day range: " + strings.Join(b.TickLabels[:], " | "),
			Left:          "left",
			TitleStyle:    &opts.TextStyle{Color: colorTextPrimary, FontSize: 18},
			SubtitleStyle: &opts.TextStyle{Color: colorTextSecondary},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			AxisLabel: &opts.AxisLabel{Color: colorTextSecondary},
			SplitLine: &opts.SplitLine{Show: opts.Bool(false)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Min:       0,
			Max:       b.Height - chart.Margin,
			AxisLabel: &opts.AxisLabel{Show: opts.Bool(false)},
			SplitLine: &opts.SplitLine{Show: opts.Bool(true), LineStyle: &opts.LineStyle{Color: colorTextSecondary, Opacity: opts.Float(0.2)}},
		}),
	)

	data := make([]opts.LineData, len(b.ScaledPoints))
	for i, p := range b.ScaledPoints {
		data[i] = opts.LineData{Value: p}
	}
	line.SetXAxis(b.Labels).
		AddSeries(b.Symbol, data).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: colorLine, Width: 2}),
		)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render %s: %w", b.Symbol, err)
	}
	return nil
}

// Unavailable renders the empty placeholder shown when a chart could not be built.
func Unavailable(w io.Writer, symbol string, height int) error {
	if height <= 0 {
		height = 200
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts(height)),
		charts.WithTitleOpts(opts.Title{
			Title:      strings.ToUpper(symbol),
			Subtitle:   "chart unavailable",
			Left:       "center",
			Top:        "middle",
			TitleStyle: &opts.TextStyle{Color: colorTextPrimary, FontSize: 18},
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{Show: opts.Bool(false)}),
	)
	if err := line.Render(w); err != nil {
		return fmt.Errorf("render %s placeholder: %w", symbol, err)
	}
	return nil
}

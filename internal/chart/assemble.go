package chart

import (
	"Stox/internal/calculator"
	"Stox/internal/model"
)

// Input is everything one chart build needs.
type Input struct {
	Symbol   string
	Range    model.RangeSelector
	Currency string
	DayRange string
	Height   int
	Quotes   []model.Quote
}

// InputFromSeries combines a fetched series with a target height.
func InputFromSeries(s *model.Series, height int) Input {
	return Input{
		Symbol:   s.Symbol,
		Range:    s.Range,
		Currency: s.Currency,
		DayRange: s.DayRange,
		Height:   height,
		Quotes:   s.Quotes,
	}
}

// Assemble runs the whole pipeline for one chart. It stops at the first
// failing step and returns a *BuildError; a bundle is only returned when
// every step succeeded.
func Assemble(in Input) (*model.ChartBundle, error) {
	if len(in.Quotes) == 0 {
		return nil, &BuildError{Symbol: in.Symbol, Stage: StageSeries, Err: ErrEmptySeries}
	}

	labels, err := Bucket(calculator.Timestamps(in.Quotes), in.Range)
	if err != nil {
		return nil, &BuildError{Symbol: in.Symbol, Stage: StageLabels, Err: err}
	}

	ticks, err := DayRangeTicks(in.DayRange)
	if err != nil {
		return nil, &BuildError{Symbol: in.Symbol, Stage: StageTicks, Err: err}
	}

	closes := calculator.Closes(in.Quotes)
	points, err := Scale(closes, in.Height)
	if err != nil {
		return nil, &BuildError{Symbol: in.Symbol, Stage: StageScale, Err: err}
	}

	var tickLabels [5]string
	for i, v := range ticks {
		tickLabels[i] = FormatMoney(v, in.Currency)
	}

	return &model.ChartBundle{
		Symbol:       in.Symbol,
		Range:        in.Range,
		Currency:     in.Currency,
		Height:       in.Height,
		XLabels:      Dedup(labels),
		Labels:       labels,
		YTicks:       ticks,
		TickLabels:   tickLabels,
		ScaledPoints: points,
		LastPrice:    FormatMoney(closes[len(closes)-1], in.Currency),
	}, nil
}

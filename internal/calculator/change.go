package calculator

import "errors"

// DailyChange computes the absolute and percentage change of last against the
// previous session's close.
func DailyChange(previousClose, last float64) (abs, pct float64, err error) {
	if previousClose <= 0 {
		return 0, 0, errors.New("previous close must be positive")
	}
	abs = last - previousClose
	pct = abs / previousClose * 100
	return abs, pct, nil
}

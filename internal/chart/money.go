package chart

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Cents returns price in hundredths, rounded half away from zero.
// Non-finite prices count as zero.
func Cents(price float64) int64 {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0
	}
	// NewFromFloat keeps the shortest decimal form, so 150.005 stays 150.005
	// instead of 150.00499999...
	return decimal.NewFromFloat(price).Mul(hundred).Round(0).IntPart()
}

// FixedPoint returns price as an exact two-decimal value.
func FixedPoint(price float64) decimal.Decimal {
	return decimal.New(Cents(price), -2)
}

// FormatMoney renders price for display in currency. Known ISO codes get the
// currency's symbol, placement and grouping; anything else (crypto or index
// pseudo-codes, empty strings) falls back to the bare two-decimal number.
func FormatMoney(price float64, currency string) string {
	fixed := FixedPoint(price)
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code != "" {
		if cur := money.GetCurrency(code); cur != nil {
			units := fixed.Shift(int32(cur.Fraction)).Round(0).IntPart()
			return money.New(units, cur.Code).Display()
		}
	}
	return fixed.StringFixed(2)
}

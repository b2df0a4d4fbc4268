package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/idine/internal/models"
)

// TipOptions are the tip percentages offered at checkout, in display order.
var TipOptions = []int{10, 15, 20, 25, 0}

var hundred = decimal.NewFromInt(100)

// Total sums the price of every item. An empty cart totals 0.
func Total(items []models.MenuItem) int {
	total := 0
	for _, item := range items {
		total += item.Price
	}
	return total
}

// ValidTip reports whether percent is one of TipOptions.
func ValidTip(percent int) bool {
	for _, p := range TipOptions {
		if p == percent {
			return true
		}
	}
	return false
}

// Tip computes the tip on total for the given percentage, rounded to cents.
func Tip(total int, percent int) (decimal.Decimal, error) {
	if total < 0 {
		return decimal.Zero, fmt.Errorf("total cannot be negative: %d", total)
	}
	if !ValidTip(percent) {
		return decimal.Zero, fmt.Errorf("unsupported tip percentage: %d", percent)
	}
	// total / 100 * percent
	return decimal.NewFromInt(int64(total)).
		Div(hundred).
		Mul(decimal.NewFromInt(int64(percent))).
		Round(2), nil
}

// TotalWithTip returns total + Tip(total, percent).
func TotalWithTip(total int, percent int) (decimal.Decimal, error) {
	tip, err := Tip(total, percent)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(int64(total)).Add(tip), nil
}

// FormatUSD renders an amount as a dollar string, e.g. "$13.80".
func FormatUSD(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

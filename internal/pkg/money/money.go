package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders an amount the way the console displays prices: "$28.50".
func Format(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Parse reads a user-entered amount. A leading "$" and surrounding spaces are ignored.
func Parse(raw string) (decimal.Decimal, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "$")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return d, nil
}

// LineTotal is unitPrice × quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

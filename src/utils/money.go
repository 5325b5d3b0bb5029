package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// RoundCents rounds a monetary amount to 2 fractional digits, half away from
// zero. Amounts are rounded once, at the point a transaction is recorded, so
// intermediate math stays exact.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FormatMoney renders a monetary amount for display, e.g. "$9,740.00" for USD.
// Unknown currency codes fall back to the bare decimal string.
func FormatMoney(amount decimal.Decimal, code string) string {
	currency := money.GetCurrency(code)
	if currency == nil {
		return amount.StringFixed(2)
	}

	minor := amount.Shift(int32(currency.Fraction)).Round(0)
	return money.New(minor.IntPart(), code).Display()
}

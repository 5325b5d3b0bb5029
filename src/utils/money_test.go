package utils_test

import (
	"testing"

	"tradesim/src/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundCents(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"99.9999", "100.00"},
		{"99.994", "99.99"},
		{"99.995", "100.00"},
		{"0.005", "0.01"},
		{"-0.005", "-0.01"},
		{"240", "240.00"},
	}
	for _, c := range cases {
		got := utils.RoundCents(decimal.RequireFromString(c.in))
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
			"RoundCents(%s) = %s, want %s", c.in, got, c.want)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$9,740.00", utils.FormatMoney(decimal.RequireFromString("9740"), "USD"))
	assert.Equal(t, "$0.01", utils.FormatMoney(decimal.RequireFromString("0.01"), "USD"))
	assert.Equal(t, "$10,070.00", utils.FormatMoney(decimal.RequireFromString("10070.00"), "USD"))

	// Unknown currency codes fall back to the plain decimal
	assert.Equal(t, "12.34", utils.FormatMoney(decimal.RequireFromString("12.34"), "???"))
}

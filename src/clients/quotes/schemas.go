package quotes

import "github.com/shopspring/decimal"

// Quote is a point-in-time snapshot of market data for one symbol. It is never
// persisted; every operation that needs a price fetches a fresh one.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

package schemas

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteResponse struct {
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	PriceFormatted string          `json:"priceFormatted"`
}

// TradeRequest covers both buy and sell. Shares arrives as a string so the
// service can reject non-integer input instead of silently truncating it.
type TradeRequest struct {
	Symbol string `json:"symbol"`
	Shares string `json:"shares"`
}

type TradeResponse struct {
	Symbol         string          `json:"symbol"`
	Kind           string          `json:"kind"`
	Shares         int             `json:"shares"`
	PricePerShare  decimal.Decimal `json:"pricePerShare"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
	Cash           decimal.Decimal `json:"cash"`
	CashFormatted  string          `json:"cashFormatted"`
}

type PortfolioEntry struct {
	Symbol         string          `json:"symbol"`
	Name           string          `json:"name"`
	Shares         int             `json:"shares"`
	Price          decimal.Decimal `json:"price"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
}

type PortfolioResponse struct {
	Holdings            []PortfolioEntry `json:"holdings"`
	Cash                decimal.Decimal  `json:"cash"`
	CashFormatted       string           `json:"cashFormatted"`
	GrandTotal          decimal.Decimal  `json:"grandTotal"`
	GrandTotalFormatted string           `json:"grandTotalFormatted"`
}

type TransactionResponse struct {
	Symbol         string          `json:"symbol"`
	Kind           string          `json:"kind"`
	Shares         int             `json:"shares"`
	PricePerShare  decimal.Decimal `json:"pricePerShare"`
	Total          decimal.Decimal `json:"total"`
	TotalFormatted string          `json:"totalFormatted"`
	Timestamp      time.Time       `json:"timestamp"`
}

type HistoryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

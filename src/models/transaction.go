package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	TransactionBuy  TransactionKind = "buy"
	TransactionSell TransactionKind = "sell"
)

// Transaction is an append-only record of one executed buy or sell. Total is
// the cash moved by the whole transaction, rounded to cents at recording time;
// PricePerShare is the quote price at execution.
type Transaction struct {
	ID            int             `db:"id"`
	UserID        int             `db:"user_id"`
	Symbol        string          `db:"symbol"`
	Kind          TransactionKind `db:"kind"`
	Shares        int             `db:"shares"`
	PricePerShare decimal.Decimal `db:"price_per_share"`
	Total         decimal.Decimal `db:"total"`
	CreatedAt     time.Time       `db:"created_at"`
}

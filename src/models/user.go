package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is one simulator account. Cash only ever changes through a buy or sell
// inside the ledger's transaction boundary.
type User struct {
	ID           int             `db:"id"`
	Username     string          `db:"username"`
	PasswordHash string          `db:"hash"`
	Cash         decimal.Decimal `db:"cash"`
	CreatedAt    time.Time       `db:"created_at"`
}

package models

import (
	"time"
)

// Holding is an account's position in one symbol. There is at most one row per
// (user, symbol) pair and Shares is always >= 1: a position sold down to zero
// is deleted, never stored.
type Holding struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Symbol    string    `db:"symbol"`
	Shares    int       `db:"shares"`
	UpdatedAt time.Time `db:"updated_at"`
}

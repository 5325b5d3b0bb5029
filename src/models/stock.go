package models

// Stock is a reference row for a symbol that has been traded at least once.
// Prices are never stored here; quotes are fetched fresh per operation.
type Stock struct {
	Symbol string `db:"symbol"`
	Name   string `db:"name"`
}

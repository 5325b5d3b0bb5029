package services

import "errors"

// Validation errors: caught before any state change, safe to retry with
// corrected input.
var (
	ErrMissingSymbol     = errors.New("must provide a stock symbol")
	ErrInvalidShareCount = errors.New("shares must be a positive integer")
	ErrMissingField      = errors.New("must provide username and password")
	ErrPasswordMismatch  = errors.New("passwords do not match")
)

// Business-rule violations: the operation is rejected, no state changed.
var (
	ErrInsufficientFunds  = errors.New("cannot afford the number of shares")
	ErrInsufficientShares = errors.New("cannot sell more shares than owned")
	ErrNoSuchHolding      = errors.New("no shares of this stock owned")
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// External-dependency failures: distinct from validation since they are
// environmental and may succeed on retry.
var (
	ErrInvalidSymbol    = errors.New("invalid stock symbol")
	ErrQuoteUnavailable = errors.New("stock quote is currently unavailable")
)

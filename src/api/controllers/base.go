package controllers

import (
	"time"

	"tradesim/src/services"

	"github.com/go-chi/jwtauth"
)

type Controller struct {
	Ledger    services.LedgerServiceI
	Account   services.AccountServiceI
	TokenAuth *jwtauth.JWTAuth
	TokenTTL  time.Duration
}

func NewController(ledger services.LedgerServiceI, account services.AccountServiceI, tokenAuth *jwtauth.JWTAuth, tokenTTL time.Duration) *Controller {
	return &Controller{
		Ledger:    ledger,
		Account:   account,
		TokenAuth: tokenAuth,
		TokenTTL:  tokenTTL,
	}
}

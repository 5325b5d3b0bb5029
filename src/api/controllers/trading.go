package controllers

import (
	"context"

	"tradesim/src/schemas"
)

func (c *Controller) GetQuote(ctx context.Context, symbol string) (*schemas.QuoteResponse, error) {
	return c.Ledger.Quote(ctx, symbol)
}

func (c *Controller) Buy(ctx context.Context, accountID int, req *schemas.TradeRequest) (*schemas.TradeResponse, error) {
	return c.Ledger.Buy(ctx, accountID, req.Symbol, req.Shares)
}

func (c *Controller) Sell(ctx context.Context, accountID int, req *schemas.TradeRequest) (*schemas.TradeResponse, error) {
	return c.Ledger.Sell(ctx, accountID, req.Symbol, req.Shares)
}

func (c *Controller) GetPortfolio(ctx context.Context, accountID int) (*schemas.PortfolioResponse, error) {
	return c.Ledger.Portfolio(ctx, accountID)
}

func (c *Controller) GetHistory(ctx context.Context, accountID int) (*schemas.HistoryResponse, error) {
	return c.Ledger.History(ctx, accountID)
}

func (c *Controller) AuditPortfolio(ctx context.Context, accountID int) error {
	return c.Ledger.CheckConsistency(ctx, accountID)
}

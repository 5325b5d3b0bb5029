package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tradesim/src/clients/quotes"
	"tradesim/src/models"
	"tradesim/src/repositories"
	"tradesim/src/schemas"
	"tradesim/src/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type LedgerServiceI interface {
	Quote(ctx context.Context, symbol string) (*schemas.QuoteResponse, error)
	Buy(ctx context.Context, accountID int, symbol, shares string) (*schemas.TradeResponse, error)
	Sell(ctx context.Context, accountID int, symbol, shares string) (*schemas.TradeResponse, error)
	Portfolio(ctx context.Context, accountID int) (*schemas.PortfolioResponse, error)
	History(ctx context.Context, accountID int) (*schemas.HistoryResponse, error)
	CheckConsistency(ctx context.Context, accountID int) error
}

// LedgerService owns every state transition over cash, holdings and
// transaction history. Each buy or sell runs as one database transaction with
// the account row locked first, so the three mutations commit or roll back as
// a unit and concurrent trades for the same account serialize.
type LedgerService struct {
	db              *pgxpool.Pool
	userRepo        repositories.UserRepository
	holdingRepo     repositories.HoldingRepository
	transactionRepo repositories.TransactionRepository
	stockRepo       repositories.StockRepository
	quotes          quotes.QuoteServiceClientI
	currency        string
}

func NewLedgerService(
	db *pgxpool.Pool,
	userRepo repositories.UserRepository,
	holdingRepo repositories.HoldingRepository,
	transactionRepo repositories.TransactionRepository,
	stockRepo repositories.StockRepository,
	quoteClient quotes.QuoteServiceClientI,
	currency string,
) *LedgerService {
	return &LedgerService{
		db:              db,
		userRepo:        userRepo,
		holdingRepo:     holdingRepo,
		transactionRepo: transactionRepo,
		stockRepo:       stockRepo,
		quotes:          quoteClient,
		currency:        currency,
	}
}

// Quote resolves a live quote for symbol. No state is touched.
func (s *LedgerService) Quote(ctx context.Context, symbol string) (*schemas.QuoteResponse, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrMissingSymbol
	}

	quote, err := s.lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return &schemas.QuoteResponse{
		Symbol:         quote.Symbol,
		Name:           quote.Name,
		Price:          quote.Price,
		PriceFormatted: utils.FormatMoney(quote.Price, s.currency),
	}, nil
}

// Buy purchases shares of symbol at the current quote price, debiting cash,
// appending a buy transaction and upserting the holding in one atomic unit.
// An exact-balance purchase succeeds; one cent short is rejected.
func (s *LedgerService) Buy(ctx context.Context, accountID int, symbol, shares string) (*schemas.TradeResponse, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrMissingSymbol
	}
	count, err := parseShareCount(shares)
	if err != nil {
		return nil, err
	}

	quote, err := s.lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}
	totalCost := quote.Price.Mul(decimal.NewFromInt(int64(count)))

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cash, err := s.userRepo.GetCashForUpdate(ctx, accountID, tx)
	if err != nil {
		return nil, err
	}
	if totalCost.GreaterThan(cash) {
		return nil, ErrInsufficientFunds
	}

	// Round once, when the transaction is recorded
	total := utils.RoundCents(totalCost)
	newCash := cash.Sub(total)

	if err := s.stockRepo.Upsert(ctx, &models.Stock{Symbol: quote.Symbol, Name: quote.Name}, tx); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateCash(ctx, accountID, newCash, tx); err != nil {
		return nil, err
	}
	record := &models.Transaction{
		UserID:        accountID,
		Symbol:        quote.Symbol,
		Kind:          models.TransactionBuy,
		Shares:        count,
		PricePerShare: quote.Price,
		Total:         total,
	}
	if err := s.transactionRepo.Create(ctx, record, tx); err != nil {
		return nil, err
	}
	if err := s.holdingRepo.AddShares(ctx, accountID, quote.Symbol, count, tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.tradeResponse(record, newCash), nil
}

// Sell disposes of shares of symbol at the current quote price, crediting
// cash, appending a sell transaction and decrementing the holding in one
// atomic unit. A position sold down to zero is deleted.
func (s *LedgerService) Sell(ctx context.Context, accountID int, symbol, shares string) (*schemas.TradeResponse, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrMissingSymbol
	}
	count, err := parseShareCount(shares)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the account row before the holding row so buys and sells always
	// take locks in the same order.
	cash, err := s.userRepo.GetCashForUpdate(ctx, accountID, tx)
	if err != nil {
		return nil, err
	}
	holding, err := s.holdingRepo.GetForUpdate(ctx, accountID, symbol, tx)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNoSuchHolding
	}
	if err != nil {
		return nil, err
	}
	if count > holding.Shares {
		return nil, ErrInsufficientShares
	}

	// Even a held symbol may have become unresolvable since purchase.
	quote, err := s.lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	proceeds := utils.RoundCents(quote.Price.Mul(decimal.NewFromInt(int64(count))))
	newCash := cash.Add(proceeds)

	if err := s.userRepo.UpdateCash(ctx, accountID, newCash, tx); err != nil {
		return nil, err
	}
	record := &models.Transaction{
		UserID:        accountID,
		Symbol:        quote.Symbol,
		Kind:          models.TransactionSell,
		Shares:        count,
		PricePerShare: quote.Price,
		Total:         proceeds,
	}
	if err := s.transactionRepo.Create(ctx, record, tx); err != nil {
		return nil, err
	}

	remaining := holding.Shares - count
	if remaining == 0 {
		err = s.holdingRepo.Delete(ctx, accountID, symbol, tx)
	} else {
		err = s.holdingRepo.SetShares(ctx, accountID, symbol, remaining, tx)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.tradeResponse(record, newCash), nil
}

// Portfolio values every holding at its live quote price and totals them with
// cash. If any held symbol cannot be quoted the whole valuation fails rather
// than reporting a stale or zero value.
func (s *LedgerService) Portfolio(ctx context.Context, accountID int) (*schemas.PortfolioResponse, error) {
	user, err := s.userRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.holdingRepo.GetByUserID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	entries := make([]schemas.PortfolioEntry, 0, len(holdings))
	grandTotal := user.Cash
	for _, h := range holdings {
		quote, err := s.lookup(ctx, h.Symbol)
		if err != nil {
			return nil, fmt.Errorf("valuating %s: %w", h.Symbol, err)
		}

		total := utils.RoundCents(quote.Price.Mul(decimal.NewFromInt(int64(h.Shares))))
		grandTotal = grandTotal.Add(total)
		entries = append(entries, schemas.PortfolioEntry{
			Symbol:         h.Symbol,
			Name:           quote.Name,
			Shares:         h.Shares,
			Price:          quote.Price,
			Total:          total,
			TotalFormatted: utils.FormatMoney(total, s.currency),
		})
	}

	return &schemas.PortfolioResponse{
		Holdings:            entries,
		Cash:                user.Cash,
		CashFormatted:       utils.FormatMoney(user.Cash, s.currency),
		GrandTotal:          grandTotal,
		GrandTotalFormatted: utils.FormatMoney(grandTotal, s.currency),
	}, nil
}

// History returns the account's transactions, most recent first.
func (s *LedgerService) History(ctx context.Context, accountID int) (*schemas.HistoryResponse, error) {
	transactions, err := s.transactionRepo.GetByUserID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	responses := make([]schemas.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, schemas.TransactionResponse{
			Symbol:         t.Symbol,
			Kind:           string(t.Kind),
			Shares:         t.Shares,
			PricePerShare:  t.PricePerShare,
			Total:          t.Total,
			TotalFormatted: utils.FormatMoney(t.Total, s.currency),
			Timestamp:      t.CreatedAt,
		})
	}
	return &schemas.HistoryResponse{Transactions: responses, Count: len(responses)}, nil
}

// CheckConsistency verifies that, for every symbol the account ever traded,
// net buy shares minus sell shares in the history equals the stored holding.
func (s *LedgerService) CheckConsistency(ctx context.Context, accountID int) error {
	net, err := s.transactionRepo.NetSharesBySymbol(ctx, accountID)
	if err != nil {
		return err
	}
	holdings, err := s.holdingRepo.GetByUserID(ctx, accountID)
	if err != nil {
		return err
	}

	held := make(map[string]int, len(holdings))
	for _, h := range holdings {
		held[h.Symbol] = h.Shares
	}

	for symbol, shares := range net {
		if held[symbol] != shares {
			return fmt.Errorf("holding mismatch for %s: history nets %d shares, holdings table has %d",
				symbol, shares, held[symbol])
		}
	}
	for symbol, shares := range held {
		if _, ok := net[symbol]; !ok {
			return fmt.Errorf("holding mismatch for %s: %d shares held with no transaction history",
				symbol, shares)
		}
	}
	return nil
}

func (s *LedgerService) lookup(ctx context.Context, symbol string) (*quotes.Quote, error) {
	quote, err := s.quotes.Lookup(ctx, symbol)
	if errors.Is(err, quotes.ErrSymbolNotFound) {
		return nil, ErrInvalidSymbol
	}
	if errors.Is(err, quotes.ErrUnavailable) {
		return nil, ErrQuoteUnavailable
	}
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *LedgerService) tradeResponse(t *models.Transaction, cash decimal.Decimal) *schemas.TradeResponse {
	return &schemas.TradeResponse{
		Symbol:         t.Symbol,
		Kind:           string(t.Kind),
		Shares:         t.Shares,
		PricePerShare:  t.PricePerShare,
		Total:          t.Total,
		TotalFormatted: utils.FormatMoney(t.Total, s.currency),
		Cash:           cash,
		CashFormatted:  utils.FormatMoney(cash, s.currency),
	}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// parseShareCount accepts only whole numbers of at least one share.
func parseShareCount(shares string) (int, error) {
	count, err := strconv.Atoi(strings.TrimSpace(shares))
	if err != nil || count < 1 {
		return 0, ErrInvalidShareCount
	}
	return count, nil
}

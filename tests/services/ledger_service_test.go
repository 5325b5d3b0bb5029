package services_test

import (
	"context"
	"testing"

	"tradesim/src/clients/quotes"
	"tradesim/src/models"
	"tradesim/src/repositories"
	"tradesim/src/services"
	"tradesim/tests/init_test"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubQuoteClient serves prices from a map so tests can move the market
// between calls.
type stubQuoteClient struct {
	prices map[string]decimal.Decimal
	err    error
}

func (s *stubQuoteClient) Lookup(_ context.Context, symbol string) (*quotes.Quote, error) {
	if s.err != nil {
		return nil, s.err
	}
	price, ok := s.prices[symbol]
	if !ok {
		return nil, quotes.ErrSymbolNotFound
	}
	return &quotes.Quote{Symbol: symbol, Name: symbol + " Corp", Price: price}, nil
}

func newLedger(db *pgxpool.Pool, stub *stubQuoteClient) *services.LedgerService {
	return services.NewLedgerService(
		db,
		repositories.NewUserRepository(db),
		repositories.NewHoldingRepository(db),
		repositories.NewTransactionRepository(db),
		repositories.NewStockRepository(db),
		stub,
		"USD",
	)
}

func newAccount(t *testing.T, db *pgxpool.Pool, username, cash string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		PasswordHash: "h",
		Cash:         decimal.RequireFromString(cash),
	}
	require.NoError(t, repositories.NewUserRepository(db).Create(context.Background(), user))
	return user
}

func requireCash(t *testing.T, db *pgxpool.Pool, userID int, want string) {
	t.Helper()
	user, err := repositories.NewUserRepository(db).GetByID(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, user.Cash.Equal(decimal.RequireFromString(want)),
		"cash = %s, want %s", user.Cash, want)
}

func TestLedgerBuySellScenario(t *testing.T) {
	db := init_test.SetupTestDB(t)
	ctx := context.Background()

	stub := &stubQuoteClient{prices: map[string]decimal.Decimal{
		"AAA": decimal.RequireFromString("50.00"),
	}}
	ledger := newLedger(db, stub)
	user := newAccount(t, db, "scenario", "10000.00")

	// Buy 10 AAA at 50.00
	trade, err := ledger.Buy(ctx, user.ID, "AAA", "10")
	require.NoError(t, err)
	assert.Equal(t, 10, trade.Shares)
	assert.True(t, trade.Total.Equal(decimal.RequireFromString("500.00")))
	assert.Equal(t, "$500.00", trade.TotalFormatted)
	requireCash(t, db, user.ID, "9500.00")
	require.NoError(t, ledger.CheckConsistency(ctx, user.ID))

	// Market moves to 60.00, sell 4
	stub.prices["AAA"] = decimal.RequireFromString("60.00")
	trade, err = ledger.Sell(ctx, user.ID, "AAA", "4")
	require.NoError(t, err)
	assert.True(t, trade.Total.Equal(decimal.RequireFromString("240.00")))
	requireCash(t, db, user.ID, "9740.00")

	holdings, err := repositories.NewHoldingRepository(db).GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, 6, holdings[0].Shares)
	require.NoError(t, ledger.CheckConsistency(ctx, user.ID))

	// Market moves to 55.00, sell remaining 6: the holding row disappears
	stub.prices["AAA"] = decimal.RequireFromString("55.00")
	_, err = ledger.Sell(ctx, user.ID, "AAA", "6")
	require.NoError(t, err)
	requireCash(t, db, user.ID, "10070.00")

	holdings, err = repositories.NewHoldingRepository(db).GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, holdings)
	require.NoError(t, ledger.CheckConsistency(ctx, user.ID))

	// History is newest first with one record per trade
	history, err := ledger.History(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 3, history.Count)
	assert.Equal(t, "sell", history.Transactions[0].Kind)
	assert.Equal(t, 6, history.Transactions[0].Shares)
	assert.Equal(t, "buy", history.Transactions[2].Kind)
	assert.True(t, history.Transactions[2].Total.Equal(decimal.RequireFromString("500.00")))
}

func TestLedgerBuyExactBalance(t *testing.T) {
	db := init_test.SetupTestDB(t)
	ctx := context.Background()

	stub := &stubQuoteClient{prices: map[string]decimal.Decimal{
		"BBB": decimal.RequireFromString("25.00"),
	}}
	ledger := newLedger(db, stub)
	user := newAccount(t, db, "exact", "100.00")

	_, err := ledger.Buy(ctx, user.ID, "BBB", "4")
	require.NoError(t, err)
	requireCash(t, db, user.ID, "0.00")
}

func TestLedgerBuyOneCentShort(t *testing.T) {
	db := init_test.SetupTestDB(t)
	ctx := context.Background()

	stub := &stubQuoteClient{prices: map[string]decimal.Decimal{
		"CCC": decimal.RequireFromString("25.00"),
	}}
	ledger := newLedger(db, stub)
	user := newAccount(t, db, "short", "99.99")

	_, err := ledger.Buy(ctx, user.ID, "CCC", "4")
	assert.ErrorIs(t, err, services.ErrInsufficientFunds)

	// Nothing moved
	requireCash(t, db, user.ID, "99.99")
	holdings, err := repositories.NewHoldingRepository(db).GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, holdings)
	history, err := ledger.History(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, history.Count)
}

func TestLedgerSellRejections(t *testing.T) {
	db := init_test.SetupTestDB(t)
	ctx := context.Background()

	stub := &stubQuoteClient{prices: map[string]decimal.Decimal{
		"DDD": decimal.RequireFromString("10.00"),
	}}
	ledger := newLedger(db, stub)
	user := newAccount(t, db, "seller", "1000.00")

	_, err := ledger.Sell(ctx, user.ID, "DDD", "1")
	assert.ErrorIs(t, err, services.ErrNoSuchHolding)

	_, err = ledger.Buy(ctx, user.ID, "DDD", "5")
	require.NoError(t, err)

	_, err = ledger.Sell(ctx, user.ID, "DDD", "6")
	assert.ErrorIs(t, err, services.ErrInsufficientShares)

	// The failed sell changed nothing
	requireCash(t, db, user.ID, "950.00")
	require.NoError(t, ledger.CheckConsistency(ctx, user.ID))
}

func TestLedgerSellDelistedSymbol(t *testing.T) {
	db := init_test.SetupTestDB(t)
	ctx := context.Background()

	stub := &stubQuoteClient{prices: map[string]decimal.Decimal{
		"EEE": decimal.RequireFromString("10.00"),
	}}
	ledger := newLedger(db, stub)
	user := newAccount(t, db, "delisted", "1000.00")

	_, err := ledger.Buy(ctx, user.ID, "EEE", "5")
	require.NoError(t, err)

	// Symbol disappears from the provider before the sell
	delete(stub.prices, "EEE")
	_, err = ledger.Sell(ctx, user.ID, "EEE", "5")
	assert.ErrorIs(t, err, services.ErrInvalidSymbol)
	requireCash(t, db, user.ID, "950.00")
}

func TestLedgerRoundTrip(t *testing.T) {
	db := init_test.SetupTestDB(t)
	ctx := context.Background()

	stub := &stubQuoteClient{prices: map[string]decimal.Decimal{
		"FFF": decimal.RequireFromString("33.3333"),
	}}
	ledger := newLedger(db, stub)
	user := newAccount(t, db, "roundtrip", "1000.00")

	_, err := ledger.Buy(ctx, user.ID, "FFF", "3")
	require.NoError(t, err)
	_, err = ledger.Sell(ctx, user.ID, "FFF", "3")
	require.NoError(t, err)

	// Buy and sell both rounded 99.9999 to 100.00, so the account is whole
	requireCash(t, db, user.ID, "1000.00")
}

func TestLedgerPortfolioValuation(t *testing.T) {
	db := init_test.SetupTestDB(t)
	ctx := context.Background()

	stub := &stubQuoteClient{prices: map[string]decimal.Decimal{
		"GGG": decimal.RequireFromString("50.00"),
		"HHH": decimal.RequireFromString("20.00"),
	}}
	ledger := newLedger(db, stub)
	user := newAccount(t, db, "valuation", "10000.00")

	_, err := ledger.Buy(ctx, user.ID, "GGG", "10")
	require.NoError(t, err)
	_, err = ledger.Buy(ctx, user.ID, "HHH", "5")
	require.NoError(t, err)

	// Prices move after purchase; valuation uses the fresh quotes
	stub.prices["GGG"] = decimal.RequireFromString("55.00")

	portfolio, err := ledger.Portfolio(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, portfolio.Holdings, 2)
	assert.True(t, portfolio.Cash.Equal(decimal.RequireFromString("9400.00")))
	// 10*55 + 5*20 + 9400
	assert.True(t, portfolio.GrandTotal.Equal(decimal.RequireFromString("10050.00")))
	assert.Equal(t, "$10,050.00", portfolio.GrandTotalFormatted)

	// A held symbol the provider no longer resolves fails the whole valuation
	delete(stub.prices, "HHH")
	_, err = ledger.Portfolio(ctx, user.ID)
	assert.ErrorIs(t, err, services.ErrInvalidSymbol)

	// Provider outage likewise fails the valuation rather than guessing
	stub.err = quotes.ErrUnavailable
	_, err = ledger.Portfolio(ctx, user.ID)
	assert.ErrorIs(t, err, services.ErrQuoteUnavailable)
}

package repositories_test

import (
	"context"
	"testing"

	"tradesim/src/models"
	"tradesim/src/repositories"
	"tradesim/tests/init_test"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepository(t *testing.T) {
	db := init_test.SetupTestDB(t)
	repo := repositories.NewTransactionRepository(db)
	user := createTestUser(t, db, "trader")

	ctx := context.Background()
	records := []*models.Transaction{
		{
			UserID: user.ID, Symbol: "AAA", Kind: models.TransactionBuy,
			Shares: 10, PricePerShare: decimal.RequireFromString("50.00"),
			Total: decimal.RequireFromString("500.00"),
		},
		{
			UserID: user.ID, Symbol: "AAA", Kind: models.TransactionSell,
			Shares: 4, PricePerShare: decimal.RequireFromString("60.00"),
			Total: decimal.RequireFromString("240.00"),
		},
		{
			UserID: user.ID, Symbol: "BBB", Kind: models.TransactionBuy,
			Shares: 3, PricePerShare: decimal.RequireFromString("12.3456"),
			Total: decimal.RequireFromString("37.04"),
		},
	}

	t.Run("Create assigns id and timestamp", func(t *testing.T) {
		for _, record := range records {
			require.NoError(t, repo.Create(ctx, record, nil))
			assert.NotZero(t, record.ID)
			assert.False(t, record.CreatedAt.IsZero())
		}
	})

	t.Run("GetByUserID returns newest first", func(t *testing.T) {
		got, err := repo.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "BBB", got[0].Symbol)
		assert.Equal(t, models.TransactionSell, got[1].Kind)
		assert.Equal(t, models.TransactionBuy, got[2].Kind)
		assert.True(t, got[2].Total.Equal(decimal.RequireFromString("500.00")))
		// 4 fractional digits of the execution price survive the round trip
		assert.True(t, got[0].PricePerShare.Equal(decimal.RequireFromString("12.3456")))
	})

	t.Run("NetSharesBySymbol nets buys against sells", func(t *testing.T) {
		net, err := repo.NetSharesBySymbol(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 6, net["AAA"])
		assert.Equal(t, 3, net["BBB"])
	})

	t.Run("GetByUserID for unknown user is empty", func(t *testing.T) {
		got, err := repo.GetByUserID(ctx, 999999)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

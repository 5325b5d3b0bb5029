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

func TestUserRepository(t *testing.T) {
	db := init_test.SetupTestDB(t)
	repo := repositories.NewUserRepository(db)

	t.Run("Create and GetByUsername", func(t *testing.T) {
		ctx := context.Background()
		user := &models.User{
			Username:     "alice",
			PasswordHash: "$2a$10$fakehashfakehashfakehash",
			Cash:         decimal.RequireFromString("10000.00"),
		}

		err := repo.Create(ctx, user)
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())

		got, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)
		assert.True(t, got.Cash.Equal(decimal.RequireFromString("10000.00")))
	})

	t.Run("Create rejects duplicate username", func(t *testing.T) {
		ctx := context.Background()
		first := &models.User{Username: "bob", PasswordHash: "h", Cash: decimal.RequireFromString("10000.00")}
		require.NoError(t, repo.Create(ctx, first))

		dup := &models.User{Username: "bob", PasswordHash: "h", Cash: decimal.RequireFromString("10000.00")}
		err := repo.Create(ctx, dup)
		assert.ErrorIs(t, err, repositories.ErrDuplicateUsername)
	})

	t.Run("GetByUsername for unknown user", func(t *testing.T) {
		_, err := repo.GetByUsername(context.Background(), "nobody")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("UpdateCash inside a transaction", func(t *testing.T) {
		ctx := context.Background()
		user := &models.User{Username: "carol", PasswordHash: "h", Cash: decimal.RequireFromString("500.00")}
		require.NoError(t, repo.Create(ctx, user))

		tx, err := db.Begin(ctx)
		require.NoError(t, err)

		cash, err := repo.GetCashForUpdate(ctx, user.ID, tx)
		require.NoError(t, err)
		assert.True(t, cash.Equal(decimal.RequireFromString("500.00")))

		err = repo.UpdateCash(ctx, user.ID, decimal.RequireFromString("123.45"), tx)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.Cash.Equal(decimal.RequireFromString("123.45")))
	})

	t.Run("UpdateCash rollback leaves balance untouched", func(t *testing.T) {
		ctx := context.Background()
		user := &models.User{Username: "dave", PasswordHash: "h", Cash: decimal.RequireFromString("777.00")}
		require.NoError(t, repo.Create(ctx, user))

		tx, err := db.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.UpdateCash(ctx, user.ID, decimal.Zero, tx))
		require.NoError(t, tx.Rollback(ctx))

		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, got.Cash.Equal(decimal.RequireFromString("777.00")))
	})
}

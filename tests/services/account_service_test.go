package services_test

import (
	"context"
	"testing"

	"tradesim/src/repositories"
	"tradesim/src/services"
	"tradesim/tests/init_test"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService(t *testing.T) {
	db := init_test.SetupTestDB(t)
	repo := repositories.NewUserRepository(db)
	svc := services.NewAccountService(repo, decimal.RequireFromString("10000.00"), "USD")
	ctx := context.Background()

	t.Run("Register grants starting cash", func(t *testing.T) {
		account, err := svc.Register(ctx, "newuser", "hunter2", "hunter2")
		require.NoError(t, err)
		assert.NotZero(t, account.ID)
		assert.Equal(t, "$10,000.00", account.Cash)

		// The stored credential is a hash, never the plaintext
		user, err := repo.GetByUsername(ctx, "newuser")
		require.NoError(t, err)
		assert.NotEqual(t, "hunter2", user.PasswordHash)
		assert.NotEmpty(t, user.PasswordHash)
	})

	t.Run("Register validation", func(t *testing.T) {
		_, err := svc.Register(ctx, "", "pw", "pw")
		assert.ErrorIs(t, err, services.ErrMissingField)

		_, err = svc.Register(ctx, "someone", "", "")
		assert.ErrorIs(t, err, services.ErrMissingField)

		_, err = svc.Register(ctx, "someone", "pw", "other")
		assert.ErrorIs(t, err, services.ErrPasswordMismatch)
	})

	t.Run("Register rejects duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, "newuser", "different", "different")
		assert.ErrorIs(t, err, services.ErrDuplicateUsername)
	})

	t.Run("Authenticate", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "newuser", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, "newuser", user.Username)

		_, err = svc.Authenticate(ctx, "newuser", "wrong")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)

		_, err = svc.Authenticate(ctx, "ghost", "hunter2")
		assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	})
}

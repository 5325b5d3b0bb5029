package services

import (
	"context"
	"errors"

	"tradesim/src/models"
	"tradesim/src/repositories"
	"tradesim/src/schemas"
	"tradesim/src/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type AccountServiceI interface {
	Register(ctx context.Context, username, password, confirmation string) (*schemas.AccountResponse, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

type AccountService struct {
	userRepo     repositories.UserRepository
	startingCash decimal.Decimal
	currency     string
}

func NewAccountService(userRepo repositories.UserRepository, startingCash decimal.Decimal, currency string) *AccountService {
	return &AccountService{
		userRepo:     userRepo,
		startingCash: startingCash,
		currency:     currency,
	}
}

// Register creates an account with the configured starting cash. Passwords are
// stored only as bcrypt hashes; duplicate usernames surface as a conflict.
func (s *AccountService) Register(ctx context.Context, username, password, confirmation string) (*schemas.AccountResponse, error) {
	if username == "" || password == "" {
		return nil, ErrMissingField
	}
	if password != confirmation {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Cash:         s.startingCash,
	}
	// The unique index decides the duplicate race, not a pre-check
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return &schemas.AccountResponse{
		ID:       user.ID,
		Username: user.Username,
		Cash:     utils.FormatMoney(user.Cash, s.currency),
	}, nil
}

// Authenticate verifies the username/password pair. Unknown usernames and bad
// passwords are indistinguishable to the caller.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingField
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

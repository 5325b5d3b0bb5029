package controllers

import (
	"context"
	"time"

	"tradesim/src/schemas"
)

func (c *Controller) Register(ctx context.Context, req *schemas.RegisterRequest) (*schemas.AccountResponse, error) {
	return c.Account.Register(ctx, req.Username, req.Password, req.Confirmation)
}

// Login verifies credentials and issues a signed token carrying the account id.
// The ledger itself holds no session state.
func (c *Controller) Login(ctx context.Context, username, password string) (*schemas.TokenResponse, error) {
	user, err := c.Account.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	claims := map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(c.TokenTTL).Unix(),
	}
	_, tokenString, err := c.TokenAuth.Encode(claims)
	if err != nil {
		return nil, err
	}
	return &schemas.TokenResponse{Token: tokenString}, nil
}

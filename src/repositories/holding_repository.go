package repositories

import (
	"context"
	"errors"

	"tradesim/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HoldingRepository interface {
	GetByUserID(ctx context.Context, userID int) ([]models.Holding, error)
	GetForUpdate(ctx context.Context, userID int, symbol string, tx pgx.Tx) (*models.Holding, error)
	AddShares(ctx context.Context, userID int, symbol string, shares int, tx pgx.Tx) error
	SetShares(ctx context.Context, userID int, symbol string, shares int, tx pgx.Tx) error
	Delete(ctx context.Context, userID int, symbol string, tx pgx.Tx) error
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) GetByUserID(ctx context.Context, userID int) ([]models.Holding, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, symbol, shares, updated_at
		FROM holdings
		WHERE user_id = $1
		ORDER BY symbol`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ID, &h.UserID, &h.Symbol, &h.Shares, &h.UpdatedAt); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// GetForUpdate locks the holding row for the rest of the enclosing
// transaction. Returns ErrNotFound when the account holds no shares of symbol.
func (r *holdingRepo) GetForUpdate(ctx context.Context, userID int, symbol string, tx pgx.Tx) (*models.Holding, error) {
	var h models.Holding
	err := tx.QueryRow(ctx,
		`SELECT id, user_id, symbol, shares, updated_at
		FROM holdings
		WHERE user_id = $1 AND symbol = $2
		FOR UPDATE`,
		userID, symbol,
	).Scan(&h.ID, &h.UserID, &h.Symbol, &h.Shares, &h.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// AddShares upserts the (user, symbol) position, creating the row on first buy.
func (r *holdingRepo) AddShares(ctx context.Context, userID int, symbol string, shares int, tx pgx.Tx) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO holdings (user_id, symbol, shares)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, symbol) DO UPDATE SET
			shares = holdings.shares + EXCLUDED.shares,
			updated_at = now()`,
		userID, symbol, shares)
	return err
}

func (r *holdingRepo) SetShares(ctx context.Context, userID int, symbol string, shares int, tx pgx.Tx) error {
	tag, err := tx.Exec(ctx,
		`UPDATE holdings SET shares = $1, updated_at = now()
		WHERE user_id = $2 AND symbol = $3`,
		shares, userID, symbol)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *holdingRepo) Delete(ctx context.Context, userID int, symbol string, tx pgx.Tx) error {
	tag, err := tx.Exec(ctx,
		`DELETE FROM holdings WHERE user_id = $1 AND symbol = $2`,
		userID, symbol)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"errors"

	"tradesim/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StockRepository interface {
	Upsert(ctx context.Context, s *models.Stock, tx pgx.Tx) error
	GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error)
}

type stockRepo struct {
	db *pgxpool.Pool
}

func NewStockRepository(db *pgxpool.Pool) StockRepository {
	return &stockRepo{db: db}
}

// Upsert records the symbol in the reference table on its first trade and
// refreshes the company name afterwards.
func (r *stockRepo) Upsert(ctx context.Context, s *models.Stock, tx pgx.Tx) error {
	query := `
		INSERT INTO stocks (symbol, name)
		VALUES ($1, $2)
		ON CONFLICT (symbol) DO UPDATE SET name = EXCLUDED.name`

	if tx == nil {
		_, err := r.db.Exec(ctx, query, s.Symbol, s.Name)
		return err
	}
	_, err := tx.Exec(ctx, query, s.Symbol, s.Name)
	return err
}

func (r *stockRepo) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	var s models.Stock
	err := r.db.QueryRow(ctx,
		`SELECT symbol, name FROM stocks WHERE symbol = $1`, symbol,
	).Scan(&s.Symbol, &s.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

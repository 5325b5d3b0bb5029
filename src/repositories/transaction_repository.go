package repositories

import (
	"context"

	"tradesim/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type TransactionRepository interface {
	Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error
	GetByUserID(ctx context.Context, userID int) ([]models.Transaction, error)
	NetSharesBySymbol(ctx context.Context, userID int) (map[string]int, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

// Create appends one transaction record. Rows are never updated or deleted.
func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error {
	query := `
		INSERT INTO transactions (user_id, symbol, kind, shares, price_per_share, total)
		VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric)
		RETURNING id, created_at`

	args := []interface{}{
		t.UserID, t.Symbol, string(t.Kind), t.Shares,
		t.PricePerShare.String(), t.Total.StringFixed(2),
	}

	if tx == nil {
		return r.db.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt)
	}
	return tx.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt)
}

// GetByUserID returns the account's full history, most recent first.
func (r *transactionRepo) GetByUserID(ctx context.Context, userID int) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, symbol, kind, shares, price_per_share::text, total::text, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

// NetSharesBySymbol sums buys minus sells per symbol across the whole history.
// The result must agree with the holdings table for every symbol ever traded.
func (r *transactionRepo) NetSharesBySymbol(ctx context.Context, userID int) (map[string]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT symbol, SUM(CASE WHEN kind = 'buy' THEN shares ELSE -shares END)::int
		FROM transactions
		WHERE user_id = $1
		GROUP BY symbol`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	net := make(map[string]int)
	for rows.Next() {
		var symbol string
		var shares int
		if err := rows.Scan(&symbol, &shares); err != nil {
			return nil, err
		}
		net[symbol] = shares
	}
	return net, rows.Err()
}

func scanTransaction(rows pgx.Rows) (*models.Transaction, error) {
	var t models.Transaction
	var kind, price, total string
	if err := rows.Scan(&t.ID, &t.UserID, &t.Symbol, &kind, &t.Shares, &price, &total, &t.CreatedAt); err != nil {
		return nil, err
	}

	t.Kind = models.TransactionKind(kind)
	var err error
	t.PricePerShare, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	t.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

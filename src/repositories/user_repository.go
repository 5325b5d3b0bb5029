package repositories

import (
	"context"
	"errors"
	"time"

	"tradesim/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const uniqueViolationCode = "23505"

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetCashForUpdate(ctx context.Context, id int, tx pgx.Tx) (decimal.Decimal, error)
	UpdateCash(ctx context.Context, id int, cash decimal.Decimal, tx pgx.Tx) error
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, hash, cash)
		VALUES ($1, $2, $3::numeric)
		RETURNING id, created_at`,
		u.Username, u.PasswordHash, u.Cash.StringFixed(2),
	).Scan(&u.ID, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicateUsername
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.get(ctx, `SELECT id, username, hash, cash::text, created_at FROM users WHERE id = $1`, id)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.get(ctx, `SELECT id, username, hash, cash::text, created_at FROM users WHERE username = $1`, username)
}

func (r *userRepo) get(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var u models.User
	var cash string
	var createdAt time.Time
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &cash, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	u.Cash, err = decimal.NewFromString(cash)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = createdAt
	return &u, nil
}

// GetCashForUpdate reads the account's cash balance under a row lock, so two
// concurrent trades for the same account serialize instead of interleaving
// their read-then-write steps.
func (r *userRepo) GetCashForUpdate(ctx context.Context, id int, tx pgx.Tx) (decimal.Decimal, error) {
	var cash string
	err := tx.QueryRow(ctx,
		`SELECT cash::text FROM users WHERE id = $1 FOR UPDATE`, id,
	).Scan(&cash)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Decimal{}, ErrNotFound
	}
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(cash)
}

func (r *userRepo) UpdateCash(ctx context.Context, id int, cash decimal.Decimal, tx pgx.Tx) error {
	tag, err := tx.Exec(ctx,
		`UPDATE users SET cash = $1::numeric WHERE id = $2`,
		cash.StringFixed(2), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tradesim/src/api/controllers"
	"tradesim/src/clients/quotes"
	"tradesim/src/config"
	"tradesim/src/database"
	"tradesim/src/repositories"
	"tradesim/src/services"
	"tradesim/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Controller *controllers.Controller
	TokenAuth  *jwtauth.JWTAuth
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	startingCash, err := decimal.NewFromString(cfg.Trading.StartingCash)
	if err != nil {
		return nil, err
	}

	userRepo := repositories.NewUserRepository(db)
	holdingRepo := repositories.NewHoldingRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	stockRepo := repositories.NewStockRepository(db)

	ledger := services.NewLedgerService(
		db, userRepo, holdingRepo, transactionRepo, stockRepo,
		quotes.NewClient(cfg), cfg.Trading.Currency,
	)
	account := services.NewAccountService(userRepo, startingCash, cfg.Trading.Currency)

	tokenAuth := jwtauth.New("HS256", []byte(cfg.Auth.JWTSecret), nil)
	tokenTTL := time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute

	return &Handler{
		Controller: controllers.NewController(ledger, account, tokenAuth, tokenTTL),
		TokenAuth:  tokenAuth,
	}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	switch {
	case err == nil:
		utils.WriteError(w, utils.InternalServerError("unhandled error"))
	case errors.As(err, &httpErr):
		utils.WriteError(w, httpErr)
	case errors.Is(err, context.DeadlineExceeded):
		utils.WriteError(w, utils.NewHTTPError(http.StatusGatewayTimeout, "request timed out"))
	case errors.Is(err, services.ErrMissingSymbol),
		errors.Is(err, services.ErrInvalidShareCount),
		errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrInvalidSymbol),
		errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrInsufficientShares),
		errors.Is(err, services.ErrNoSuchHolding):
		utils.WriteError(w, utils.BadRequest(err.Error()))
	case errors.Is(err, services.ErrDuplicateUsername):
		utils.WriteError(w, utils.Conflict(err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.WriteError(w, utils.Unauthorized(err.Error()))
	case errors.Is(err, services.ErrQuoteUnavailable):
		utils.WriteError(w, utils.BadGateway(err.Error()))
	case errors.Is(err, repositories.ErrNotFound):
		utils.WriteError(w, utils.NotFound(err.Error()))
	default:
		utils.WriteError(w, utils.InternalServerError(err.Error()))
	}
}

// accountID extracts the authenticated account from the verified JWT claims.
func accountID(r *http.Request) (int, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, utils.Unauthorized("invalid token")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, utils.Unauthorized("invalid token")
	}
	return int(id), nil
}

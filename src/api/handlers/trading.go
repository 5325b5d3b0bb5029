package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tradesim/src/schemas"
	"tradesim/src/utils"
)

func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	symbol := r.URL.Query().Get("symbol")

	quote, err := h.Controller.GetQuote(ctx, symbol)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, quote, http.StatusOK)
}

func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.Controller.Buy)
}

func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, h.Controller.Sell)
}

func (h *Handler) trade(w http.ResponseWriter, r *http.Request, execute func(context.Context, int, *schemas.TradeRequest) (*schemas.TradeResponse, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	id, err := accountID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("malformed request body"))
		return
	}

	trade, err := execute(ctx, id, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, trade, http.StatusOK)
}

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	id, err := accountID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	portfolio, err := h.Controller.GetPortfolio(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, portfolio, http.StatusOK)
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := accountID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	history, err := h.Controller.GetHistory(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, history, http.StatusOK)
}

// AuditPortfolio re-derives the account's positions from its transaction
// history and reports whether they agree with the holdings table.
func (h *Handler) AuditPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := accountID(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Controller.AuditPortfolio(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]string{"status": "consistent"}, http.StatusOK)
}

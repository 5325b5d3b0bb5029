package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tradesim/src/schemas"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	account, err := h.Controller.Register(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, account, http.StatusCreated)
}

func (h *Handler) PostToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	tokenResponse, err := h.Controller.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, tokenResponse, http.StatusOK)
}

// Package points — handlers.go отдаёт баланс и историю операций.
package points

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/server/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/points", h.handleBalance)
	r.Get("/points/transactions", h.handleTransactions)
}

// handleBalance — GET /v1/points.
func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	balance, err := h.service.Balance(r.Context(), userID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, balance)
}

// handleTransactions — GET /v1/points/transactions?limit=N.
func (h *Handler) handleTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			common.WriteError(w, r, fmt.Errorf("limit должен быть числом: %w", common.ErrInvalidInput))
			return
		}
	}

	txs, err := h.service.History(r.Context(), userID, limit)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, txs)
}

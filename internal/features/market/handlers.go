// Package market — handlers.go: витрина и покупки.
package market

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
	r.Route("/market", func(r chi.Router) {
		r.Get("/items", h.handleItems)
		r.Get("/purchases", h.handlePurchases)
		r.Post("/items/{id}/purchase", h.handlePurchase)
	})
}

// handleItems — GET /v1/market/items.
func (h *Handler) handleItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, items)
}

// handlePurchases — GET /v1/market/purchases.
func (h *Handler) handlePurchases(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	out, err := h.service.ListPurchases(r.Context(), userID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, out)
}

// handlePurchase — POST /v1/market/items/{id}/purchase.
func (h *Handler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.WriteError(w, r, fmt.Errorf("id товара: %w", common.ErrInvalidInput))
		return
	}

	p, err := h.service.Purchase(r.Context(), userID, itemID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, p)
}

// Package quotes — handlers.go: GET /v1/quotes/random.
package quotes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/quotes/random", h.handleRandom)
}

func (h *Handler) handleRandom(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, h.service.Random(r.Context()))
}

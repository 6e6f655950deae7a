// Package education — handlers.go: лента материалов для приложения.
package education

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
	r.Get("/education", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, out)
}

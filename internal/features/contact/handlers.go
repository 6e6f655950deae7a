// Package contact — handlers.go: отправка обращения из приложения.
package contact

import (
	"net/http"

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
	r.Post("/contact", h.handleSubmit)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	var req SubmitRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := common.Validate(req); err != nil {
		common.WriteError(w, r, err)
		return
	}

	m, err := h.service.Submit(r.Context(), userID, req)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, m)
}

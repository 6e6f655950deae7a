// Package streak — handlers.go отдаёт серию и сводку за неделю.
package streak

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
	r.Get("/streak", h.handleStreak)
}

// handleStreak — GET /v1/streak. Пересчитывает и сохраняет серию, как экран серии в приложении.
func (h *Handler) handleStreak(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	res, err := h.service.CalculateStreak(r.Context(), userID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

// Package profiles — handlers.go отдаёт профиль текущего пользователя.
package profiles

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/server/middleware"
)

// Handler обрабатывает HTTP-запросы профиля.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик профиля.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes регистрирует маршруты профиля.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.handleMe)
}

// handleMe — GET /v1/me.
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, profile)
}

// Package badges — handlers.go: список значков и получение награды.
package badges

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
	r.Get("/badges", h.handleList)
	r.Post("/badges/{id}/claim", h.handleClaim)
}

// handleList — GET /v1/badges.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	list, err := h.service.List(r.Context(), userID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, list)
}

// handleClaim — POST /v1/badges/{id}/claim.
func (h *Handler) handleClaim(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	badgeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.WriteError(w, r, fmt.Errorf("id значка: %w", common.ErrInvalidInput))
		return
	}

	res, err := h.service.Claim(r.Context(), userID, badgeID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

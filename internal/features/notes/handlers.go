// Package notes — handlers.go: список, создание и удаление заметок.
package notes

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

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
	r.Get("/notes", h.handleList)
	r.Post("/notes", h.handleCreate)
	r.Delete("/notes/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	out, err := h.service.List(r.Context(), userID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	var req CreateRequest
	if err := common.DecodeJSON(w, r, &req); err != nil {
		common.WriteError(w, r, err)
		return
	}
	if err := common.Validate(req); err != nil {
		common.WriteError(w, r, err)
		return
	}

	note, err := h.service.Create(r.Context(), userID, req.Content)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, note)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// Чужой или несуществующий id выглядит одинаково
		common.WriteError(w, r, fmt.Errorf("заметка: %w", common.ErrNotFound))
		return
	}

	if err := h.service.Delete(r.Context(), userID, noteID); err != nil {
		common.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

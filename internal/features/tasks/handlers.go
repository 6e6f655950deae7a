// Package tasks — handlers.go отдаёт дневные наборы по HTTP.
package tasks

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/BlqckRiad/CepteMotivasyon/internal/common"
	"github.com/BlqckRiad/CepteMotivasyon/internal/server/middleware"
)

// defaultHistoryDays — период истории, если from/to не заданы.
const defaultHistoryDays = 30

type Handler struct {
	service *Service
	clock   *common.Clock
}

func NewHandler(service *Service, clock *common.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// Routes регистрирует маршруты заданий.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/today", h.handleToday)
		r.Post("/today/{slot}/toggle", h.handleToggle)
		r.Get("/history", h.handleHistory)
	})
}

// handleToday — GET /v1/tasks/today.
func (h *Handler) handleToday(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	set, err := h.service.Today(r.Context(), userID)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, set)
}

// handleToggle — POST /v1/tasks/today/{slot}/toggle.
func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		common.WriteError(w, r, fmt.Errorf("слот должен быть числом: %w", common.ErrInvalidSlot))
		return
	}

	result, err := h.service.ToggleToday(r.Context(), userID, slot)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, result)
}

// handleHistory — GET /v1/tasks/history?from=YYYY-MM-DD&to=YYYY-MM-DD.
// По умолчанию — последние 30 дней, включая сегодня.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserID(r.Context())
	if err != nil {
		common.WriteError(w, r, err)
		return
	}

	to := h.clock.Today()
	from := common.AddDays(to, -(defaultHistoryDays - 1))
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = common.ParseDate(v); err != nil {
			common.WriteError(w, r, err)
			return
		}
		from = common.AddDays(to, -(defaultHistoryDays - 1))
	}
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = common.ParseDate(v); err != nil {
			common.WriteError(w, r, err)
			return
		}
	}

	sets, err := h.service.History(r.Context(), userID, from, to)
	if err != nil {
		common.WriteError(w, r, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, sets)
}

// Package common — respond.go содержит общие функции JSON-ответов для HTTP-обработчиков.
// Ошибки приводятся к единому конверту {"code", "message"}.
package common

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// maxBodyBytes — предел тела запроса; заметки самые длинные, 2000 символов.
const maxBodyBytes = 64 * 1024

// ErrorResponse — тело ответа с ошибкой.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON пишет payload как JSON с указанным статусом.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Debug("Ошибка записи JSON-ответа")
	}
}

// WriteError отвечает клиенту ошибкой. Статус и код выбираются по типу ошибки,
// неизвестные ошибки логируются и отдаются как 500 без подробностей.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("Ошибка обработки запроса")
		message = "внутренняя ошибка сервера"
	}
	WriteJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// DecodeJSON читает тело запроса в dst. Неизвестные поля запрещены.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Join(ErrInvalidInput, err)
	}
	return nil
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrWrongPassword), errors.Is(err, ErrSessionExpired):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too_many_attempts"
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidSlot), errors.Is(err, ErrInvalidAmount):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrInsufficientPoints):
		return http.StatusConflict, "insufficient_points"
	case errors.Is(err, ErrAlreadyPurchased), errors.Is(err, ErrBadgeAlreadyClaimed), errors.Is(err, ErrDuplicateAssignment):
		return http.StatusConflict, "conflict"
	case errors.Is(err, ErrBadgeNotAchieved), errors.Is(err, ErrItemUnavailable):
		return http.StatusUnprocessableEntity, "precondition_failed"
	case errors.Is(err, ErrFeatureDisabled):
		return http.StatusForbidden, "feature_disabled"
	case errors.Is(err, ErrCatalogExhausted):
		return http.StatusServiceUnavailable, "catalog_exhausted"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

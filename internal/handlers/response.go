package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avc/maya-storefront/internal/domain"
	"github.com/avc/maya-storefront/internal/service"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON читает тело запроса и проверяет теги validate
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// errorStatus сопоставляет ошибку слоя сервиса с HTTP статусом
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrStorefrontNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotAuthenticated),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrReservationExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidPayload),
		errors.Is(err, domain.ErrEmptyCart):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownKind),
		errors.Is(err, domain.ErrUnknownModal),
		errors.Is(err, domain.ErrInvalidIdentity),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError отвечает статусом по ошибке. Неизвестные ошибки логируются.
func writeError(w http.ResponseWriter, err error, logger *zap.Logger, msg string, fields ...zap.Field) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(msg, append(fields, zap.Error(err))...)
		http.Error(w, "Internal Server Error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

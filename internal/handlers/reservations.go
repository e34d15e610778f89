package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avc/maya-storefront/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationsHandler struct {
	reservationService domain.ReservationService
	logger             *zap.Logger
}

func NewReservationsHandler(reservationService domain.ReservationService, logger *zap.Logger) *ReservationsHandler {
	return &ReservationsHandler{
		reservationService: reservationService,
		logger:             logger,
	}
}

// Create сохраняет бронирование отеля, ресторана или экскурсии
func (h *ReservationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	kind, err := domain.ParseActionKind(chi.URLParam(r, "kind"))
	if err != nil || !kind.Persisted() {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	var entry domain.LedgerEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	reserved, err := h.reservationService.Reserve(r.Context(), userID, kind, entry)
	if err != nil {
		writeError(w, err, h.logger, "failed to create reservation",
			zap.Int64("user_id", userID),
			zap.String("kind", string(kind)),
		)
		return
	}

	writeJSON(w, http.StatusCreated, reserved, h.logger)
}

// History возвращает сохраненные бронирования пользователя
func (h *ReservationsHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	history, err := h.reservationService.History(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get history", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, history, h.logger)
}

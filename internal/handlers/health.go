package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Pinger проверяет доступность базы данных
type Pinger interface {
	Ping(ctx context.Context) error
}

// StorefrontCounter сообщает количество открытых витрин
type StorefrontCounter interface {
	Len() int
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	db          Pinger
	storefronts StorefrontCounter
	logger      *zap.Logger
}

// NewHealthHandler создает новый HealthHandler
func NewHealthHandler(db Pinger, storefronts StorefrontCounter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		storefronts: storefronts,
		logger:      logger,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Storefronts int    `json:"storefronts"`
}

func (h *HealthHandler) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return h.db.Ping(ctx)
}

// Health возвращает статус приложения
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:   "ok",
		Database: "ok",
	}
	if h.storefronts != nil {
		response.Storefronts = h.storefronts.Len()
	}

	status := http.StatusOK
	if err := h.ping(r.Context()); err != nil {
		response.Status = "degraded"
		response.Database = "unavailable"
		status = http.StatusServiceUnavailable
		h.logger.Warn("health check: database unavailable", zap.Error(err))
	}

	writeJSON(w, status, response, h.logger)
}

// Ready возвращает готовность приложения принимать трафик
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context()); err != nil {
		h.logger.Warn("readiness check failed: database unavailable", zap.Error(err))
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry содержит коллекторы приложения
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms .. ~5s
		},
		[]string{"method", "route"},
	)

	actionsDeferred = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "gateway",
			Name:      "actions_deferred_total",
			Help:      "Action requests parked until authentication.",
		},
		[]string{"kind"},
	)

	actionsCommitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "gateway",
			Name:      "actions_committed_total",
			Help:      "Action requests recorded in a ledger.",
		},
		[]string{"kind"},
	)

	actionsReplayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "gateway",
			Name:      "actions_replayed_total",
			Help:      "Pending actions replayed after authentication.",
		},
		[]string{"kind"},
	)

	amountCommitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "gateway",
			Name:      "amount_committed_total",
			Help:      "Sum of committed totals, MXN.",
		},
		[]string{"kind"},
	)

	reservationsPersisted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "reservations",
			Name:      "persist_total",
			Help:      "Reservation persistence attempts by result.",
		},
		[]string{"result"},
	)

	storefrontsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "storefront",
			Subsystem: "sessions",
			Name:      "open",
			Help:      "Current number of open storefront sessions.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		actionsDeferred,
		actionsCommitted,
		actionsReplayed,
		amountCommitted,
		reservationsPersisted,
		storefrontsOpen,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler возвращает HTTP handler с метриками Prometheus
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware собирает метрики HTTP запросов по шаблону маршрута chi
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// ActionDeferred учитывает отложенное до входа действие
func ActionDeferred(kind string) {
	actionsDeferred.WithLabelValues(kind).Inc()
}

// ActionCommitted учитывает подтвержденное действие и его сумму
func ActionCommitted(kind string, total float64) {
	actionsCommitted.WithLabelValues(kind).Inc()
	if total > 0 {
		amountCommitted.WithLabelValues(kind).Add(total)
	}
}

// ActionReplayed учитывает повтор отложенного действия
func ActionReplayed(kind string) {
	actionsReplayed.WithLabelValues(kind).Inc()
}

// ReservationPersisted учитывает результат сохранения бронирования
func ReservationPersisted(result string) {
	reservationsPersisted.WithLabelValues(result).Inc()
}

// StorefrontOpened увеличивает число открытых витрин
func StorefrontOpened() {
	storefrontsOpen.Inc()
}

// StorefrontClosed уменьшает число открытых витрин
func StorefrontClosed() {
	storefrontsOpen.Dec()
}

package app

import (
	"github.com/avc/maya-storefront/internal/handlers"
	"github.com/avc/maya-storefront/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// setupRouter создает и настраивает роутер
func setupRouter(deps *dependencies, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	setupMiddleware(r, logger)
	setupRoutes(r, deps)

	return r
}

// setupMiddleware настраивает middleware для роутера
func setupMiddleware(r *chi.Mux, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5))
}

// setupRoutes настраивает маршруты приложения
func setupRoutes(r *chi.Mux, deps *dependencies) {
	h := deps.handlers

	r.Get("/health", h.health.Health)
	r.Get("/ready", h.health.Ready)
	r.Handle("/metrics", metrics.Handler())

	// Вход и регистрация с ограничением частоты
	r.Group(func(r chi.Router) {
		r.Use(deps.authLimiter.Handler)
		r.Post("/api/user/register", h.auth.Register)
		r.Post("/api/user/login", h.auth.Login)
	})

	r.Route("/api/storefront", func(r chi.Router) {
		r.Post("/", h.storefront.Open)

		// Остальные операции требуют идентификатор витрины в заголовке
		r.Group(func(r chi.Router) {
			r.Use(handlers.StorefrontMiddleware())

			r.Delete("/", h.storefront.Close)
			r.Get("/state", h.storefront.State)

			r.Post("/modal", h.storefront.OpenModal)
			r.Delete("/modal", h.storefront.CloseModal)

			r.Get("/cart", h.storefront.Cart)
			r.Post("/cart/items", h.storefront.AddCartItem)
			r.Delete("/cart/items/{id}", h.storefront.RemoveCartItem)

			r.Post("/actions/{kind}", h.storefront.RequestAction)
			r.Post("/checkout", h.storefront.Checkout)
			r.Get("/ledger", h.storefront.Ledger)
			r.Post("/logout", h.storefront.Logout)

			r.Group(func(r chi.Router) {
				r.Use(deps.authLimiter.Handler)
				r.Post("/auth/register", h.storefront.Register)
				r.Post("/auth/login", h.storefront.Login)
			})
		})
	})

	// Защищенные эндпоинты
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(deps.jwtManager))
		r.Post("/api/reservations/{kind}", h.reservations.Create)
		r.Get("/api/user/history", h.reservations.History)
	})
}

package app

import (
	"github.com/avc/maya-storefront/internal/config"
	"github.com/avc/maya-storefront/internal/domain"
	"github.com/avc/maya-storefront/internal/gateway"
	"github.com/avc/maya-storefront/internal/handlers"
	"github.com/avc/maya-storefront/internal/repository/postgres"
	"github.com/avc/maya-storefront/internal/service"
	"github.com/avc/maya-storefront/internal/utils/jwt"
	"github.com/avc/maya-storefront/internal/utils/password"
	"github.com/avc/maya-storefront/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// repositories содержит все репозитории приложения
type repositories struct {
	user        domain.UserRepository
	reservation domain.ReservationRepository
}

// services содержит все сервисы приложения
type services struct {
	auth         domain.AuthService
	reservations *service.ReservationService
	storefronts  *service.StorefrontService
}

// handlerSet содержит все хендлеры приложения
type handlerSet struct {
	auth         *handlers.AuthHandler
	storefront   *handlers.StorefrontHandler
	reservations *handlers.ReservationsHandler
	health       *handlers.HealthHandler
}

// dependencies содержит все зависимости приложения
type dependencies struct {
	repos       *repositories
	services    *services
	handlers    *handlerSet
	jwtManager  *jwt.Manager
	workerPool  *worker.Pool
	authLimiter *handlers.RateLimiter
}

// initDependencies создает все зависимости приложения
func initDependencies(cfg *config.Config, dbPool *pgxpool.Pool, logger *zap.Logger) *dependencies {
	repos := &repositories{
		user:        postgres.NewUserRepository(dbPool),
		reservation: postgres.NewReservationRepository(dbPool),
	}

	passwordHasher := password.NewBCryptHasher(password.DefaultCost)
	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTTokenTTL)

	// Истории и идентификаторы общие для всех витрин и сервиса бронирований
	ledgers := gateway.NewLedgerBook()
	ids := gateway.NewIDGenerator()

	authService := service.NewAuthService(repos.user, passwordHasher, jwtManager, cfg.MinPasswordLength)
	reservationService := service.NewReservationService(repos.reservation, ids, logger)

	workerPool := worker.NewPool(
		cfg.WorkerPoolSize,
		cfg.WorkerQueueSize,
		selectPersister(cfg, reservationService, jwtManager, logger),
		logger,
	)

	svcs := &services{
		auth:         authService,
		reservations: reservationService,
		storefronts:  service.NewStorefrontService(authService, ledgers, ids, workerPool, logger),
	}

	hdlrs := &handlerSet{
		auth:         handlers.NewAuthHandler(svcs.auth, logger),
		storefront:   handlers.NewStorefrontHandler(svcs.storefronts, logger),
		reservations: handlers.NewReservationsHandler(svcs.reservations, logger),
		health:       handlers.NewHealthHandler(dbPool, svcs.storefronts, logger),
	}

	return &dependencies{
		repos:       repos,
		services:    svcs,
		handlers:    hdlrs,
		jwtManager:  jwtManager,
		workerPool:  workerPool,
		authLimiter: handlers.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst, logger),
	}
}

// selectPersister выбирает, куда worker pool сохраняет подтвержденные бронирования
func selectPersister(
	cfg *config.Config,
	local domain.ReservationPersister,
	tokens service.TokenIssuer,
	logger *zap.Logger,
) domain.ReservationPersister {
	if cfg.ReservationAPIAddress == "" {
		return local
	}

	logger.Info("reservations are persisted through remote API",
		zap.String("address", cfg.ReservationAPIAddress),
	)
	return service.NewReservationClient(cfg.ReservationAPIAddress, tokens, logger)
}

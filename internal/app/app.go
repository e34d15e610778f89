package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avc/maya-storefront/internal/config"
	"github.com/avc/maya-storefront/internal/handlers"
	"github.com/avc/maya-storefront/internal/worker"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	limiterCleanupInterval = time.Minute
	limiterMaxIdle         = 10 * time.Minute
)

// App представляет приложение
type App struct {
	config      *config.Config
	logger      *zap.Logger
	db          *pgxpool.Pool
	router      *chi.Mux
	workerPool  *worker.Pool
	authLimiter *handlers.RateLimiter
	server      *http.Server
}

// NewApp создает новое приложение
func NewApp() (*App, error) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Пул соединений и миграции
	dbPool, err := initDatabase(ctx, cfg.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database")

	deps := initDependencies(cfg, dbPool, logger)
	router := setupRouter(deps, logger)
	server := createServer(cfg.RunAddress, router)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          dbPool,
		router:      router,
		workerPool:  deps.workerPool,
		authLimiter: deps.authLimiter,
		server:      server,
	}, nil
}

// Run запускает приложение
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.workerPool.Start(ctx)
	a.logger.Info("worker pool started")

	go a.cleanupLimiters(ctx)

	if err := a.runServer(ctx); err != nil {
		return err
	}

	a.shutdown(cancel)

	return nil
}

// cleanupLimiters периодически удаляет ограничители неактивных клиентов
func (a *App) cleanupLimiters(ctx context.Context) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.authLimiter.Cleanup(limiterMaxIdle)
		}
	}
}

package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/avc/maya-storefront/internal/domain"
	"github.com/avc/maya-storefront/internal/metrics"
	"github.com/avc/maya-storefront/internal/service"
	"go.uber.org/zap"
)

// Результаты сохранения для метрик
const (
	resultOK          = "ok"
	resultDuplicate   = "duplicate"
	resultError       = "error"
	resultDropped     = "dropped"
	resultRateLimited = "rate_limited"
)

// Pool представляет пул воркеров для сохранения подтвержденных бронирований.
// Реализует domain.Dispatcher.
type Pool struct {
	workers    int
	queue      chan domain.ReservationJob
	persister  domain.ReservationPersister
	logger     *zap.Logger
	wg         sync.WaitGroup
	jobTimeout time.Duration
	done       chan struct{} // Закрывается в Stop, прерывает ожидание повтора

	mu     sync.RWMutex
	closed bool
}

// NewPool создает новый worker pool
func NewPool(
	workers int,
	queueSize int,
	persister domain.ReservationPersister,
	logger *zap.Logger,
) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &Pool{
		workers:    workers,
		queue:      make(chan domain.ReservationJob, queueSize),
		persister:  persister,
		logger:     logger,
		jobTimeout: 15 * time.Second,
		done:       make(chan struct{}),
	}
}

// Start запускает worker pool
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Stop останавливает worker pool. Задачи, уже стоящие в очереди, обрабатываются;
// задачи, ожидающие повтора после rate limit, отбрасываются.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.done)
		close(p.queue)
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// Dispatch ставит задачу в очередь без ожидания.
// false означает, что очередь заполнена или пул остановлен.
func (p *Pool) Dispatch(job domain.ReservationJob) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		metrics.ReservationPersisted(resultDropped)
		p.logger.Warn("pool is stopped, dropping reservation", zap.String("entry_id", job.Entry.ID))
		return false
	}

	select {
	case p.queue <- job:
		return true
	default:
		// Очередь заполнена, пропускаем
		metrics.ReservationPersisted(resultDropped)
		p.logger.Warn("queue is full, dropping reservation", zap.String("entry_id", job.Entry.ID))
		return false
	}
}

// worker сохраняет бронирования из очереди
func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	p.logger.Info("worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("worker stopping", zap.Int("worker_id", id))
			return
		case job, ok := <-p.queue:
			if !ok {
				return
			}
			p.processJob(ctx, job)
		}
	}
}

// processJob сохраняет одно бронирование. Ошибки только логируются:
// запись в истории уже подтверждена и не откатывается.
func (p *Pool) processJob(ctx context.Context, job domain.ReservationJob) {
	p.logger.Debug("persisting reservation",
		zap.String("entry_id", job.Entry.ID),
		zap.Int64("user_id", job.UserID),
	)

	jobCtx, cancel := context.WithTimeout(ctx, p.jobTimeout)
	defer cancel()

	err := p.persister.PersistReservation(jobCtx, job)
	switch {
	case err == nil:
		metrics.ReservationPersisted(resultOK)
		p.logger.Info("reservation persisted",
			zap.String("entry_id", job.Entry.ID),
			zap.Float64("total", job.Entry.Total),
		)

	case errors.Is(err, domain.ErrReservationExists):
		metrics.ReservationPersisted(resultDuplicate)
		p.logger.Debug("reservation already persisted", zap.String("entry_id", job.Entry.ID))

	default:
		// Обработка rate limiting
		var rateLimitErr *service.RateLimitError
		if errors.As(err, &rateLimitErr) {
			metrics.ReservationPersisted(resultRateLimited)
			p.logger.Warn("rate limit exceeded",
				zap.String("entry_id", job.Entry.ID),
				zap.Duration("retry_after", rateLimitErr.RetryAfter),
			)
			p.requeueAfter(ctx, job, rateLimitErr.RetryAfter)
			return
		}

		metrics.ReservationPersisted(resultError)
		p.logger.Error("failed to persist reservation",
			zap.String("entry_id", job.Entry.ID),
			zap.Int64("user_id", job.UserID),
			zap.Error(err),
		)
	}
}

// requeueAfter возвращает задачу в очередь после паузы.
// Пауза не длиннее jobTimeout и прерывается остановкой пула.
func (p *Pool) requeueAfter(ctx context.Context, job domain.ReservationJob, delay time.Duration) {
	delay = min(delay, p.jobTimeout)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-p.done:
		p.logger.Warn("pool is stopping, dropping rate limited reservation",
			zap.String("entry_id", job.Entry.ID),
		)
		metrics.ReservationPersisted(resultDropped)
		return
	case <-timer.C:
		p.Dispatch(job)
	}
}

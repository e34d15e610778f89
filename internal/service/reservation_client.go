package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avc/maya-storefront/internal/domain"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// TokenIssuer выпускает токен, от имени которого сохраняется бронирование
type TokenIssuer interface {
	Generate(userID int64, email string) (string, error)
}

// HTTPReservationClient реализует domain.ReservationPersister через REST API
// удаленного сервиса бронирований.
type HTTPReservationClient struct {
	baseURL    string
	tokens     TokenIssuer
	httpClient *retryablehttp.Client
}

// NewReservationClient создает новый HTTPReservationClient
func NewReservationClient(baseURL string, tokens TokenIssuer, logger *zap.Logger) *HTTPReservationClient {
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = 10 * time.Second
	client.RetryMax = 3
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.Logger = &retryLogger{logger: logger.Named("reservation_client")}
	// Последний ответ нужен, чтобы разобрать статус после исчерпания попыток
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &HTTPReservationClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: client,
	}
}

// PersistReservation отправляет подтвержденную запись в сервис бронирований
func (c *HTTPReservationClient) PersistReservation(ctx context.Context, job domain.ReservationJob) error {
	kind := job.Entry.Category.ActionKind()
	if !kind.Persisted() {
		return fmt.Errorf("%w: %s are not stored as reservations", ErrInvalidInput, job.Entry.Category)
	}

	body, err := json.Marshal(job.Entry)
	if err != nil {
		return fmt.Errorf("reservation client: failed to encode entry %s: %w", job.Entry.ID, err)
	}

	token, err := c.tokens.Generate(job.UserID, job.Email)
	if err != nil {
		return fmt.Errorf("reservation client: failed to issue token for user %d: %w", job.UserID, err)
	}

	url := fmt.Sprintf("%s/api/reservations/%s", c.baseURL, kind)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("reservation client: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return fmt.Errorf("reservation client: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil

	case http.StatusConflict:
		// Запись уже сохранена предыдущей попыткой
		return domain.ErrReservationExists

	case http.StatusTooManyRequests:
		return NewRateLimitError(parseRetryAfter(resp.Header.Get("Retry-After")))

	default:
		return fmt.Errorf("reservation client: unexpected status code: %d", resp.StatusCode)
	}
}

// maxRetryAfter ограничивает паузу, которую может запросить удаленный сервис
const maxRetryAfter = 15 * time.Second

// parseRetryAfter разбирает Retry-After в секундах. Пустое или неверное
// значение дает нулевую паузу, слишком большое обрезается до maxRetryAfter.
func parseRetryAfter(value string) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0
	}
	if seconds > int(maxRetryAfter/time.Second) {
		return maxRetryAfter
	}
	return time.Duration(seconds) * time.Second
}

// retryLogger передает сообщения retryablehttp в zap
type retryLogger struct {
	logger *zap.Logger
}

func (l *retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fields(keysAndValues)...)
}

func (l *retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fields(keysAndValues)...)
}

func (l *retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fields(keysAndValues)...)
}

func (l *retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fields(keysAndValues)...)
}

func fields(keysAndValues []interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		out = append(out, zap.Any(key, keysAndValues[i+1]))
	}
	return out
}

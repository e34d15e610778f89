package service

import (
	"errors"
	"fmt"
	"time"
)

// Ошибки аутентификации и ввода
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotAuthenticated = errors.New("storefront is not signed in")
)

// Ошибки витрины
var (
	ErrStorefrontNotFound = errors.New("storefront not found")
)

// RateLimitError представляет ошибку превышения лимита запросов
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// NewRateLimitError создает новую ошибку rate limit
func NewRateLimitError(retryAfter time.Duration) *RateLimitError {
	return &RateLimitError{RetryAfter: retryAfter}
}

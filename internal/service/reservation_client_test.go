package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avc/maya-storefront/internal/domain"
	"github.com/avc/maya-storefront/internal/utils/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestReservationClient(t *testing.T, handler http.HandlerFunc) (*HTTPReservationClient, *jwt.Manager) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := jwt.NewManager("test-secret", time.Hour)
	client := NewReservationClient(server.URL+"/", tokens, zap.NewNop())
	client.httpClient.RetryMax = 1
	client.httpClient.RetryWaitMin = time.Millisecond
	client.httpClient.RetryWaitMax = time.Millisecond
	return client, tokens
}

func TestHTTPReservationClient_PersistReservation(t *testing.T) {
	ctx := context.Background()
	job := domain.ReservationJob{UserID: 7, Email: "ana@x.com", Entry: hotelEntry()}

	t.Run("Created", func(t *testing.T) {
		var tokens *jwt.Manager
		client, tokens := newTestReservationClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/reservations/hotel", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			claims, err := tokens.Validate(r.Header.Get("Authorization")[len("Bearer "):])
			if assert.NoError(t, err) {
				assert.Equal(t, int64(7), claims.UserID)
				assert.Equal(t, "ana@x.com", claims.Email)
			}

			var entry domain.LedgerEntry
			require.NoError(t, json.NewDecoder(r.Body).Decode(&entry))
			assert.Equal(t, "H1792065600000", entry.ID)
			assert.Equal(t, "Hotel Maya", entry.Name)
			assert.Equal(t, []string{"desayuno"}, entry.Addons)

			w.WriteHeader(http.StatusCreated)
		})

		err := client.PersistReservation(ctx, job)
		assert.NoError(t, err)
	})

	t.Run("Conflict means already stored", func(t *testing.T) {
		client, _ := newTestReservationClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})

		err := client.PersistReservation(ctx, job)
		assert.ErrorIs(t, err, domain.ErrReservationExists)
	})

	t.Run("Server errors are retried", func(t *testing.T) {
		var calls atomic.Int32
		client, _ := newTestReservationClient(t, func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusCreated)
		})

		err := client.PersistReservation(ctx, job)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("Retries exhausted", func(t *testing.T) {
		client, _ := newTestReservationClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		err := client.PersistReservation(ctx, job)
		assert.Error(t, err)
	})

	t.Run("Rate limited", func(t *testing.T) {
		client, _ := newTestReservationClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
		})
		client.httpClient.RetryMax = 0

		err := client.PersistReservation(ctx, job)
		var rateLimitErr *RateLimitError
		require.ErrorAs(t, err, &rateLimitErr)
		assert.Equal(t, 2*time.Second, rateLimitErr.RetryAfter)
	})

	t.Run("Rate limited with huge Retry-After", func(t *testing.T) {
		client, _ := newTestReservationClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "86400")
			w.WriteHeader(http.StatusTooManyRequests)
		})
		client.httpClient.RetryMax = 0

		err := client.PersistReservation(ctx, job)
		var rateLimitErr *RateLimitError
		require.ErrorAs(t, err, &rateLimitErr)
		assert.Equal(t, maxRetryAfter, rateLimitErr.RetryAfter)
	})

	t.Run("Purchases are not sent", func(t *testing.T) {
		client, _ := newTestReservationClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		})

		purchase := job
		purchase.Entry.Category = domain.LedgerCategoryPurchases
		err := client.PersistReservation(ctx, purchase)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"soon", 0},
		{"-5", 0},
		{"3", 3 * time.Second},
		{" 15 ", 15 * time.Second},
		{"16", maxRetryAfter},
		{"99999999", maxRetryAfter},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseRetryAfter(tt.value))
		})
	}
}

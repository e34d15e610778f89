package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionCounters(t *testing.T) {
	before := testutil.ToFloat64(actionsCommitted.WithLabelValues("hotel"))
	amountBefore := testutil.ToFloat64(amountCommitted.WithLabelValues("hotel"))

	ActionCommitted("hotel", 3000)
	ActionCommitted("hotel", 0)

	assert.Equal(t, before+2, testutil.ToFloat64(actionsCommitted.WithLabelValues("hotel")))
	assert.Equal(t, amountBefore+3000, testutil.ToFloat64(amountCommitted.WithLabelValues("hotel")))

	deferred := testutil.ToFloat64(actionsDeferred.WithLabelValues("cart"))
	ActionDeferred("cart")
	assert.Equal(t, deferred+1, testutil.ToFloat64(actionsDeferred.WithLabelValues("cart")))

	open := testutil.ToFloat64(storefrontsOpen)
	StorefrontOpened()
	StorefrontOpened()
	StorefrontClosed()
	assert.Equal(t, open+1, testutil.ToFloat64(storefrontsOpen))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Delete("/api/storefront/cart/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodDelete, "/api/storefront/cart/items/{id}", "204"))

	for _, id := range []string{"1", "2"} {
		req := httptest.NewRequest(http.MethodDelete, "/api/storefront/cart/items/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodDelete, "/api/storefront/cart/items/{id}", "204"))
	assert.Equal(t, before+2, after)
}

func TestHandler(t *testing.T) {
	ReservationPersisted("ok")

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `storefront_reservations_persist_total{result="ok"}`)
}

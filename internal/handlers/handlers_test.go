package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avc/maya-storefront/internal/domain"
	domainmocks "github.com/avc/maya-storefront/internal/domain/mocks"
	"github.com/avc/maya-storefront/internal/gateway"
	"github.com/avc/maya-storefront/internal/service"
	"github.com/avc/maya-storefront/internal/utils/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var anaUser = &domain.User{ID: 7, Name: "Ana", Email: "ana@x.com"}

func TestAuthHandler_Register(t *testing.T) {
	mockService := domainmocks.NewAuthServiceMock(t)
	logger, _ := zap.NewDevelopment()
	handler := NewAuthHandler(mockService, logger)

	t.Run("Success", func(t *testing.T) {
		mockService.EXPECT().Register(mock.Anything, "Ana", "ana@x.com", "secret1").
			Return(&domain.AuthResult{User: anaUser, Token: "token"}, nil).Once()

		body := `{"name":"Ana","email":"ana@x.com","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Authorization"), "Bearer token")

		var resp authResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Ana", resp.User.Name)
		assert.Contains(t, resp.Message, "¡Bienvenido Ana!")
	})

	t.Run("User exists", func(t *testing.T) {
		mockService.EXPECT().Register(mock.Anything, "Ana", "ana@x.com", "secret1").
			Return(nil, domain.ErrUserExists).Once()

		body := `{"name":"Ana","email":"ana@x.com","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Password too short", func(t *testing.T) {
		mockService.EXPECT().Register(mock.Anything, "Ana", "ana@x.com", "123").
			Return(nil, service.ErrInvalidInput).Once()

		body := `{"name":"Ana","email":"ana@x.com","password":"123"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed email", func(t *testing.T) {
		body := `{"name":"Ana","email":"ana","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		body := `{"name":}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Internal error", func(t *testing.T) {
		mockService.EXPECT().Register(mock.Anything, "Ana", "ana@x.com", "secret1").
			Return(nil, errors.New("db down")).Once()

		body := `{"name":"Ana","email":"ana@x.com","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Register(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	mockService := domainmocks.NewAuthServiceMock(t)
	logger, _ := zap.NewDevelopment()
	handler := NewAuthHandler(mockService, logger)

	t.Run("Success", func(t *testing.T) {
		mockService.EXPECT().Login(mock.Anything, "ana@x.com", "secret1").
			Return(&domain.AuthResult{User: anaUser, Token: "token"}, nil).Once()

		body := `{"email":"ana@x.com","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Bearer token", w.Header().Get("Authorization"))
		assert.Contains(t, w.Body.String(), "¡Bienvenido de vuelta Ana!")
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		mockService.EXPECT().Login(mock.Anything, "ana@x.com", "wrong").
			Return(nil, domain.ErrInvalidCredentials).Once()

		body := `{"email":"ana@x.com","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Missing password", func(t *testing.T) {
		body := `{"email":"ana@x.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// storefrontClient обращается к витрине через роутер с middleware
type storefrontClient struct {
	t      *testing.T
	router http.Handler
	id     string
}

func newStorefrontClient(t *testing.T) (*storefrontClient, *domainmocks.AuthServiceMock) {
	t.Helper()
	auth := domainmocks.NewAuthServiceMock(t)
	svc := service.NewStorefrontService(auth, gateway.NewLedgerBook(), gateway.NewIDGenerator(), nil, zap.NewNop())
	handler := NewStorefrontHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/api/storefront", handler.Open)
	r.Group(func(r chi.Router) {
		r.Use(StorefrontMiddleware())
		r.Delete("/api/storefront", handler.Close)
		r.Get("/api/storefront/state", handler.State)
		r.Post("/api/storefront/modal", handler.OpenModal)
		r.Delete("/api/storefront/modal", handler.CloseModal)
		r.Get("/api/storefront/cart", handler.Cart)
		r.Post("/api/storefront/cart/items", handler.AddCartItem)
		r.Delete("/api/storefront/cart/items/{id}", handler.RemoveCartItem)
		r.Post("/api/storefront/checkout", handler.Checkout)
		r.Post("/api/storefront/actions/{kind}", handler.RequestAction)
		r.Post("/api/storefront/auth/register", handler.Register)
		r.Post("/api/storefront/auth/login", handler.Login)
		r.Post("/api/storefront/logout", handler.Logout)
		r.Get("/api/storefront/ledger", handler.Ledger)
	})

	c := &storefrontClient{t: t, router: r}
	w := c.do(http.MethodPost, "/api/storefront", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var opened openResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&opened))
	require.NotEmpty(t, opened.ID)
	c.id = opened.ID

	return c, auth
}

func (c *storefrontClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if c.id != "" {
		req.Header.Set(StorefrontHeader, c.id)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *storefrontClient) state() domain.StorefrontState {
	c.t.Helper()
	w := c.do(http.MethodGet, "/api/storefront/state", "")
	require.Equal(c.t, http.StatusOK, w.Code)

	var state domain.StorefrontState
	require.NoError(c.t, json.NewDecoder(w.Body).Decode(&state))
	return state
}

func TestStorefrontHandler_DeferredHotelBooking(t *testing.T) {
	client, auth := newStorefrontClient(t)

	w := client.do(http.MethodPost, "/api/storefront/actions/hotel",
		`{"name":"Hotel Maya","total":3000,"checkin_date":"2026-11-01","checkout_date":"2026-11-03"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)

	state := client.state()
	assert.True(t, state.AwaitingAuth)
	assert.Equal(t, domain.ModalAuth, state.Modal.Kind)

	w = client.do(http.MethodGet, "/api/storefront/ledger", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	auth.EXPECT().Register(mock.Anything, "Ana", "ana@x.com", "secret1").
		Return(&domain.AuthResult{User: anaUser, Token: "token"}, nil).Once()

	w = client.do(http.MethodPost, "/api/storefront/auth/register",
		`{"name":"Ana","email":"ana@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Bearer token", w.Header().Get("Authorization"))

	var resp storefrontAuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Replayed)
	assert.Equal(t, "Hotel Maya", resp.Replayed.Name)
	assert.Equal(t, "Reserva confirmada en Hotel Maya por $3000.00 MXN", resp.ReplayedMessage)

	w = client.do(http.MethodGet, "/api/storefront/ledger", "")
	require.Equal(t, http.StatusOK, w.Code)

	var ledger domain.LedgerSnapshot
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ledger))
	assert.Len(t, ledger.Hotels, 1)
	assert.Equal(t, 3000.0, ledger.TotalSpent)
}

func TestStorefrontHandler_CartCheckout(t *testing.T) {
	client, auth := newStorefrontClient(t)

	auth.EXPECT().Login(mock.Anything, "ana@x.com", "secret1").
		Return(&domain.AuthResult{User: anaUser, Token: "token"}, nil).Once()
	w := client.do(http.MethodPost, "/api/storefront/auth/login", `{"email":"ana@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = client.do(http.MethodPost, "/api/storefront/checkout", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = client.do(http.MethodPost, "/api/storefront/cart/items", `{"id":1,"name":"Huipil bordado","price":200}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Huipil bordado agregado al carrito!")

	w = client.do(http.MethodPost, "/api/storefront/cart/items", `{"id":2,"name":"Hamaca","price":150}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = client.do(http.MethodPost, "/api/storefront/cart/items", `{"id":3,"name":"Jarrón","price":90}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = client.do(http.MethodDelete, "/api/storefront/cart/items/3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var view cartResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, 2, view.Count)
	assert.Equal(t, 350.0, view.Total)

	w = client.do(http.MethodPost, "/api/storefront/checkout", "")
	require.Equal(t, http.StatusOK, w.Code)

	var action actionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&action))
	assert.Equal(t, "confirmed", action.Status)
	require.NotNil(t, action.Entry)
	assert.Equal(t, domain.DefaultPurchaseName, action.Entry.Name)
	assert.Equal(t, 350.0, action.Entry.Total)

	assert.Zero(t, client.state().CartCount)
}

func TestStorefrontHandler_RequestActionValidation(t *testing.T) {
	client, _ := newStorefrontClient(t)

	w := client.do(http.MethodPost, "/api/storefront/actions/spa", `{"name":"x","total":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = client.do(http.MethodPost, "/api/storefront/actions/experience", `{"name":"Cenote","total":900}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = client.do(http.MethodPost, "/api/storefront/actions/hotel", `{"name":"Hotel Maya","total":-1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = client.do(http.MethodPost, "/api/storefront/actions/hotel", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Ни один неверный запрос не занял слот ожидания
	assert.False(t, client.state().AwaitingAuth)
}

func TestStorefrontHandler_ModalAndLogout(t *testing.T) {
	client, auth := newStorefrontClient(t)

	w := client.do(http.MethodPost, "/api/storefront/modal", `{"kind":"restaurant","data":{"id":4}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ModalRestaurant, client.state().Modal.Kind)

	w = client.do(http.MethodPost, "/api/storefront/modal", `{"kind":"spa"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = client.do(http.MethodDelete, "/api/storefront/modal", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, domain.ModalNone, client.state().Modal.Kind)

	auth.EXPECT().Login(mock.Anything, "ana@x.com", "secret1").
		Return(&domain.AuthResult{User: anaUser, Token: "token"}, nil).Once()
	w = client.do(http.MethodPost, "/api/storefront/auth/login", `{"email":"ana@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = client.do(http.MethodPost, "/api/storefront/cart/items", `{"id":1,"name":"Huipil bordado","price":200}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = client.do(http.MethodPost, "/api/storefront/logout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sesión cerrada exitosamente")

	state := client.state()
	assert.False(t, state.Session.Authenticated)
	assert.Zero(t, state.CartCount)

	w = client.do(http.MethodDelete, "/api/storefront", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = client.do(http.MethodGet, "/api/storefront/state", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationsHandler_Create(t *testing.T) {
	mockService := domainmocks.NewReservationServiceMock(t)
	handler := NewReservationsHandler(mockService, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/api/reservations/{kind}", handler.Create)

	newRequest := func(kind, body string, userID int64) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/reservations/"+kind, bytes.NewBufferString(body))
		if userID != 0 {
			req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
		}
		return req
	}

	t.Run("Created", func(t *testing.T) {
		reserved := &domain.LedgerEntry{
			ID:       "R1",
			Category: domain.LedgerCategoryRestaurants,
			Payload:  domain.Payload{Name: "La Chaya Maya", Total: 450},
			Status:   domain.EntryStatusConfirmed,
		}
		mockService.EXPECT().Reserve(mock.Anything, int64(7), domain.ActionKindRestaurant, mock.MatchedBy(func(e domain.LedgerEntry) bool {
			return e.Name == "La Chaya Maya" && e.Total == 450 && len(e.MenuItems) == 2
		})).Return(reserved, nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest("restaurant", `{"name":"La Chaya Maya","total":450,"menu_items":["cochinita","panuchos"]}`, 7))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"R1"`)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mockService.EXPECT().Reserve(mock.Anything, int64(7), domain.ActionKindHotel, mock.Anything).
			Return(nil, domain.ErrReservationExists).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest("hotel", `{"id":"H1","name":"Hotel Maya","total":3000}`, 7))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Invalid payload", func(t *testing.T) {
		mockService.EXPECT().Reserve(mock.Anything, int64(7), domain.ActionKindExperience, mock.Anything).
			Return(nil, domain.ErrInvalidPayload).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest("experience", `{"name":"Cenote","total":900}`, 7))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Cart is not a reservation", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest("cart", `{}`, 7))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, newRequest("hotel", `{}`, 0))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestReservationsHandler_History(t *testing.T) {
	mockService := domainmocks.NewReservationServiceMock(t)
	handler := NewReservationsHandler(mockService, zap.NewNop())

	t.Run("Success", func(t *testing.T) {
		history := &domain.LedgerSnapshot{
			Hotels:      []domain.LedgerEntry{{ID: "H1", Payload: domain.Payload{Name: "Hotel Maya", Total: 3000}}},
			Restaurants: []domain.LedgerEntry{},
			Experiences: []domain.LedgerEntry{},
			Purchases:   []domain.LedgerEntry{},
			TotalSpent:  3000,
		}
		mockService.EXPECT().History(mock.Anything, int64(1)).Return(history, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/user/history", nil)
		ctx := context.WithValue(req.Context(), UserIDKey, int64(1))
		w := httptest.NewRecorder()

		handler.History(w, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, w.Code)

		var result domain.LedgerSnapshot
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		assert.Equal(t, 3000.0, result.TotalSpent)
		assert.Len(t, result.Hotels, 1)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/history", nil)
		w := httptest.NewRecorder()

		handler.History(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

type stubCounter int

func (c stubCounter) Len() int {
	return int(c)
}

func TestHealthHandler(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		handler := NewHealthHandler(stubPinger{}, stubCounter(3), zap.NewNop())

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var resp HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, 3, resp.Storefronts)

		w = httptest.NewRecorder()
		handler.Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Database down", func(t *testing.T) {
		handler := NewHealthHandler(stubPinger{err: errors.New("refused")}, nil, zap.NewNop())

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "unavailable")

		w = httptest.NewRecorder()
		handler.Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := jwt.NewManager("test-secret", time.Hour)
	token, _ := jwtManager.Generate(123, "ana@x.com")

	middleware := AuthMiddleware(jwtManager)
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		assert.True(t, ok)
		assert.Equal(t, int64(123), userID)
		assert.Equal(t, "ana@x.com", r.Context().Value(EmailKey))
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Basic "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

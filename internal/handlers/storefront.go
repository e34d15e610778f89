package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/avc/maya-storefront/internal/domain"
	"github.com/avc/maya-storefront/internal/gateway"
	"github.com/avc/maya-storefront/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StorefrontService определяет операции витрины
type StorefrontService interface {
	Open() string
	Close(id string) error
	State(id string) (domain.StorefrontState, error)
	OpenModal(id string, kind domain.ModalKind, data json.RawMessage) (domain.ModalTarget, error)
	CloseModal(id string) error
	Cart(id string) (domain.CartView, error)
	AddToCart(id string, item domain.CartItem) (domain.CartView, error)
	RemoveFromCart(id string, itemID int64) (domain.CartView, error)
	RequestAction(id string, req domain.ActionRequest) (gateway.Outcome, error)
	Checkout(id string) (gateway.Outcome, error)
	Register(ctx context.Context, id, name, email, password string) (*service.AuthOutcome, error)
	Login(ctx context.Context, id, email, password string) (*service.AuthOutcome, error)
	Logout(id string) error
	Ledger(id string) (domain.LedgerSnapshot, error)
}

type StorefrontHandler struct {
	storefronts StorefrontService
	logger      *zap.Logger
}

func NewStorefrontHandler(storefronts StorefrontService, logger *zap.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		storefronts: storefronts,
		logger:      logger,
	}
}

type openResponse struct {
	ID string `json:"id"`
}

type modalRequest struct {
	Kind string          `json:"kind" validate:"required"`
	Data json.RawMessage `json:"data,omitempty"`
}

type cartItemRequest struct {
	ID    int64   `json:"id" validate:"required"`
	Name  string  `json:"name" validate:"required,max=255"`
	Price float64 `json:"price" validate:"gte=0"`
}

type cartResponse struct {
	domain.CartView
	Message string `json:"message,omitempty"`
}

type actionResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Entry   *domain.LedgerEntry `json:"entry,omitempty"`
}

type storefrontAuthResponse struct {
	User            *domain.User        `json:"user"`
	Message         string              `json:"message"`
	Replayed        *domain.LedgerEntry `json:"replayed,omitempty"`
	ReplayedMessage string              `json:"replayed_message,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *StorefrontHandler) Open(w http.ResponseWriter, r *http.Request) {
	id := h.storefronts.Open()
	w.Header().Set(StorefrontHeader, id)
	writeJSON(w, http.StatusCreated, openResponse{ID: id}, h.logger)
}

func (h *StorefrontHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.storefronts.Close(id); err != nil {
		writeError(w, err, h.logger, "failed to close storefront")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *StorefrontHandler) State(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	state, err := h.storefronts.State(id)
	if err != nil {
		writeError(w, err, h.logger, "failed to get storefront state")
		return
	}

	writeJSON(w, http.StatusOK, state, h.logger)
}

func (h *StorefrontHandler) OpenModal(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var req modalRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	kind, err := domain.ParseModalKind(req.Kind)
	if err != nil {
		writeError(w, err, h.logger, "failed to open modal")
		return
	}

	target, err := h.storefronts.OpenModal(id, kind, req.Data)
	if err != nil {
		writeError(w, err, h.logger, "failed to open modal")
		return
	}

	writeJSON(w, http.StatusOK, target, h.logger)
}

func (h *StorefrontHandler) CloseModal(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.storefronts.CloseModal(id); err != nil {
		writeError(w, err, h.logger, "failed to close modal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *StorefrontHandler) Cart(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	view, err := h.storefronts.Cart(id)
	if err != nil {
		writeError(w, err, h.logger, "failed to get cart")
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{CartView: view}, h.logger)
}

func (h *StorefrontHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	item := domain.CartItem{ID: req.ID, Name: req.Name, Price: req.Price}
	view, err := h.storefronts.AddToCart(id, item)
	if err != nil {
		writeError(w, err, h.logger, "failed to add cart item")
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{CartView: view, Message: addedToCartMessage(item)}, h.logger)
}

func (h *StorefrontHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	view, err := h.storefronts.RemoveFromCart(id, itemID)
	if err != nil {
		writeError(w, err, h.logger, "failed to remove cart item")
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{CartView: view}, h.logger)
}

func (h *StorefrontHandler) RequestAction(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	kind, err := domain.ParseActionKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	var payload domain.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	req, err := domain.NewActionRequest(kind, payload)
	if err != nil {
		writeError(w, err, h.logger, "invalid action request")
		return
	}

	outcome, err := h.storefronts.RequestAction(id, req)
	if err != nil {
		writeError(w, err, h.logger, "failed to request action", zap.String("kind", string(kind)))
		return
	}

	h.writeOutcome(w, outcome)
}

func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	outcome, err := h.storefronts.Checkout(id)
	if err != nil {
		writeError(w, err, h.logger, "failed to checkout")
		return
	}

	h.writeOutcome(w, outcome)
}

func (h *StorefrontHandler) writeOutcome(w http.ResponseWriter, outcome gateway.Outcome) {
	if outcome.Deferred {
		writeJSON(w, http.StatusAccepted, actionResponse{
			Status:  "pending_auth",
			Message: deferredMessage,
		}, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, actionResponse{
		Status:  string(outcome.Entry.Status),
		Message: confirmationMessage(outcome.Entry),
		Entry:   outcome.Entry,
	}, h.logger)
}

func (h *StorefrontHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	outcome, err := h.storefronts.Register(r.Context(), id, req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err, h.logger, "failed to register through storefront", zap.String("email", req.Email))
		return
	}

	h.writeAuth(w, outcome, true)
}

func (h *StorefrontHandler) Login(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	outcome, err := h.storefronts.Login(r.Context(), id, req.Email, req.Password)
	if err != nil {
		writeError(w, err, h.logger, "failed to login through storefront", zap.String("email", req.Email))
		return
	}

	h.writeAuth(w, outcome, false)
}

func (h *StorefrontHandler) writeAuth(w http.ResponseWriter, outcome *service.AuthOutcome, registered bool) {
	resp := storefrontAuthResponse{
		User:     outcome.Result.User,
		Message:  welcomeMessage(outcome.Result.User, registered),
		Replayed: outcome.Replayed,
	}
	if outcome.Replayed != nil {
		resp.ReplayedMessage = confirmationMessage(outcome.Replayed)
	}

	w.Header().Set("Authorization", "Bearer "+outcome.Result.Token)
	writeJSON(w, http.StatusOK, resp, h.logger)
}

func (h *StorefrontHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.storefronts.Logout(id); err != nil {
		writeError(w, err, h.logger, "failed to logout")
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: logoutMessage}, h.logger)
}

func (h *StorefrontHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	id, ok := GetStorefrontID(r.Context())
	if !ok {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ledger, err := h.storefronts.Ledger(id)
	if err != nil {
		writeError(w, err, h.logger, "failed to get ledger")
		return
	}

	writeJSON(w, http.StatusOK, ledger, h.logger)
}

package handlers

import (
	"net/http"

	"github.com/avc/maya-storefront/internal/domain"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService domain.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService domain.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	User    *domain.User `json:"user"`
	Message string       `json:"message,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err, h.logger, "failed to register", zap.String("email", req.Email))
		return
	}

	w.Header().Set("Authorization", "Bearer "+result.Token)
	writeJSON(w, http.StatusOK, authResponse{
		User:    result.User,
		Message: welcomeMessage(result.User, true),
	}, h.logger)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err, h.logger, "failed to login", zap.String("email", req.Email))
		return
	}

	w.Header().Set("Authorization", "Bearer "+result.Token)
	writeJSON(w, http.StatusOK, authResponse{
		User:    result.User,
		Message: welcomeMessage(result.User, false),
	}, h.logger)
}

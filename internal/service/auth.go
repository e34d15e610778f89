package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avc/maya-storefront/internal/domain"
	"github.com/avc/maya-storefront/internal/utils/jwt"
	"github.com/avc/maya-storefront/internal/utils/password"
)

// AuthService реализует domain.AuthService
type AuthService struct {
	userRepo          domain.UserRepository
	passwordHasher    password.Hasher
	jwtManager        *jwt.Manager
	minPasswordLength int
}

// NewAuthService создает новый AuthService
func NewAuthService(
	userRepo domain.UserRepository,
	passwordHasher password.Hasher,
	jwtManager *jwt.Manager,
	minPasswordLength int,
) *AuthService {
	if minPasswordLength <= 0 {
		minPasswordLength = password.DefaultMinLength
	}
	return &AuthService{
		userRepo:          userRepo,
		passwordHasher:    passwordHasher,
		jwtManager:        jwtManager,
		minPasswordLength: minPasswordLength,
	}
}

// NormalizeEmail приводит email к виду, в котором он хранится
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(ctx context.Context, name, email, userPassword string) (*domain.AuthResult, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	// Валидация входных данных
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: malformed email %q", ErrInvalidInput, email)
	}
	if err := password.Validate(userPassword, s.minPasswordLength); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// Хеширование пароля
	hash, err := s.passwordHasher.Hash(userPassword)
	if err != nil {
		return nil, fmt.Errorf("auth service: failed to hash password for %q: %w", email, err)
	}

	// Создание пользователя
	user, err := s.userRepo.CreateUser(ctx, name, email, hash)
	if err != nil {
		// Не оборачиваем sentinel error
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("auth service: failed to register %q: %w", email, err)
	}

	return s.issue(user)
}

// Login аутентифицирует пользователя
func (s *AuthService) Login(ctx context.Context, email, userPassword string) (*domain.AuthResult, error) {
	email = NormalizeEmail(email)

	// Валидация входных данных
	if email == "" || userPassword == "" {
		return nil, fmt.Errorf("%w: empty email or password", ErrInvalidInput)
	}

	// Получение пользователя по email
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: failed to get user %q: %w", email, err)
	}

	// Проверка пароля
	if err := s.passwordHasher.Check(user.PasswordHash, userPassword); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*domain.AuthResult, error) {
	token, err := s.jwtManager.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("auth service: failed to generate token for user %d: %w", user.ID, err)
	}

	return &domain.AuthResult{User: user, Token: token}, nil
}

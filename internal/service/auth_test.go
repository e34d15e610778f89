package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avc/maya-storefront/internal/domain"
	domainmocks "github.com/avc/maya-storefront/internal/domain/mocks"
	"github.com/avc/maya-storefront/internal/utils/jwt"
	"github.com/avc/maya-storefront/internal/utils/password"
	passwordmocks "github.com/avc/maya-storefront/internal/utils/password/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	mockUserRepo := domainmocks.NewUserRepositoryMock(t)
	mockHasher := passwordmocks.NewHasherMock(t)
	jwtManager := jwt.NewManager("test-secret", time.Hour)
	svc := NewAuthService(mockUserRepo, mockHasher, jwtManager, 6)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		pwd := "password123"
		passwordHash := "hashed_password"
		user := &domain.User{ID: 1, Name: "Ana", Email: "ana@x.com", PasswordHash: passwordHash}

		mockHasher.EXPECT().Hash(pwd).Return(passwordHash, nil).Once()
		mockUserRepo.EXPECT().CreateUser(mock.Anything, "Ana", "ana@x.com", passwordHash).Return(user, nil).Once()

		result, err := svc.Register(ctx, " Ana ", "  ANA@x.com", pwd)
		require.NoError(t, err)
		assert.Equal(t, user, result.User)
		assert.NotEmpty(t, result.Token)

		claims, err := jwtManager.Validate(result.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(1), claims.UserID)
		assert.Equal(t, "ana@x.com", claims.Email)
	})

	t.Run("Empty name", func(t *testing.T) {
		result, err := svc.Register(ctx, "  ", "ana@x.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, result)
	})

	t.Run("Malformed email", func(t *testing.T) {
		result, err := svc.Register(ctx, "Ana", "ana.x.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, result)
	})

	t.Run("Short password", func(t *testing.T) {
		result, err := svc.Register(ctx, "Ana", "ana@x.com", "12345")
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.ErrorIs(t, err, password.ErrPasswordTooShort)
		assert.Nil(t, result)
	})

	t.Run("Hash password error", func(t *testing.T) {
		pwd := "password123"

		mockHasher.EXPECT().Hash(pwd).Return("", errors.New("hash error")).Once()

		result, err := svc.Register(ctx, "Ana", "ana@x.com", pwd)
		assert.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("User already exists", func(t *testing.T) {
		pwd := "password123"
		passwordHash := "hashed_password"

		mockHasher.EXPECT().Hash(pwd).Return(passwordHash, nil).Once()
		mockUserRepo.EXPECT().CreateUser(mock.Anything, "Ana", "ana@x.com", passwordHash).Return(nil, domain.ErrUserExists).Once()

		result, err := svc.Register(ctx, "Ana", "ana@x.com", pwd)
		assert.ErrorIs(t, err, domain.ErrUserExists)
		assert.Nil(t, result)
	})

	t.Run("Database error", func(t *testing.T) {
		pwd := "password123"
		passwordHash := "hashed_password"

		mockHasher.EXPECT().Hash(pwd).Return(passwordHash, nil).Once()
		mockUserRepo.EXPECT().CreateUser(mock.Anything, "Ana", "ana@x.com", passwordHash).Return(nil, errors.New("db error")).Once()

		result, err := svc.Register(ctx, "Ana", "ana@x.com", pwd)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrUserExists)
		assert.Nil(t, result)
	})
}

func TestAuthService_Login(t *testing.T) {
	mockUserRepo := domainmocks.NewUserRepositoryMock(t)
	mockHasher := passwordmocks.NewHasherMock(t)
	jwtManager := jwt.NewManager("test-secret", time.Hour)
	svc := NewAuthService(mockUserRepo, mockHasher, jwtManager, 0)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		pwd := "password123"
		passwordHash := "hashed_password"
		user := &domain.User{ID: 1, Name: "Ana", Email: "ana@x.com", PasswordHash: passwordHash}

		mockUserRepo.EXPECT().GetUserByEmail(mock.Anything, "ana@x.com").Return(user, nil).Once()
		mockHasher.EXPECT().Check(passwordHash, pwd).Return(nil).Once()

		result, err := svc.Login(ctx, "Ana@X.com", pwd)
		require.NoError(t, err)
		assert.Equal(t, "Ana", result.User.Name)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("Empty email", func(t *testing.T) {
		result, err := svc.Login(ctx, "", "password")
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, result)
	})

	t.Run("Empty password", func(t *testing.T) {
		result, err := svc.Login(ctx, "ana@x.com", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, result)
	})

	t.Run("User not found", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail(mock.Anything, "nobody@x.com").Return(nil, domain.ErrUserNotFound).Once()

		result, err := svc.Login(ctx, "nobody@x.com", "password123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, result)
	})

	t.Run("Wrong password", func(t *testing.T) {
		passwordHash := "hashed_password"
		user := &domain.User{ID: 1, Name: "Ana", Email: "ana@x.com", PasswordHash: passwordHash}

		mockUserRepo.EXPECT().GetUserByEmail(mock.Anything, "ana@x.com").Return(user, nil).Once()
		mockHasher.EXPECT().Check(passwordHash, "wrongpassword").Return(password.ErrMismatch).Once()

		result, err := svc.Login(ctx, "ana@x.com", "wrongpassword")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, result)
	})

	t.Run("Database error", func(t *testing.T) {
		mockUserRepo.EXPECT().GetUserByEmail(mock.Anything, "ana@x.com").Return(nil, errors.New("db error")).Once()

		result, err := svc.Login(ctx, "ana@x.com", "password123")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Nil(t, result)
	})
}

package domain

import "errors"

// Ошибки пользователей
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Ошибки запросов на действие
var (
	ErrInvalidPayload  = errors.New("invalid action payload")
	ErrUnknownKind     = errors.New("unknown action kind")
	ErrInvalidAction   = errors.New("action request was not built by a factory")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidIdentity = errors.New("invalid identity")
	ErrUnknownModal    = errors.New("unknown modal kind")
)

// Ошибки бронирований
var (
	ErrReservationExists = errors.New("reservation already exists")
)

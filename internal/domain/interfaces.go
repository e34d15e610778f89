package domain

import "context"

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

// ReservationRepository определяет методы для работы с бронированиями
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation *Reservation) error
	GetReservationsByUserID(ctx context.Context, userID int64) ([]*Reservation, error)
}

// AuthService определяет методы аутентификации
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// ReservationPersister сохраняет подтвержденные записи на сервере
type ReservationPersister interface {
	PersistReservation(ctx context.Context, job ReservationJob) error
}

// ReservationService определяет методы работы с бронированиями
type ReservationService interface {
	ReservationPersister
	Reserve(ctx context.Context, userID int64, kind ActionKind, entry LedgerEntry) (*LedgerEntry, error)
	History(ctx context.Context, userID int64) (*LedgerSnapshot, error)
}

// Dispatcher принимает задачи на сохранение без ожидания результата
type Dispatcher interface {
	Dispatch(job ReservationJob) bool
}

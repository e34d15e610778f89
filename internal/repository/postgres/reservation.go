package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc/maya-storefront/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// ReservationRepository реализует domain.ReservationRepository
type ReservationRepository struct {
	db DBTX
}

// NewReservationRepository создает новый ReservationRepository
func NewReservationRepository(db DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateReservation сохраняет подтвержденное бронирование.
// Идентификатор приходит из истории, поэтому повторная отправка дает ErrReservationExists.
func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	details := reservation.Details
	if len(details) == 0 {
		details = []byte("{}")
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO reservations (id, user_id, category, name, total, details, status, created_at) 
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		reservation.ID, reservation.UserID, reservation.Category, reservation.Name,
		reservation.Total, details, reservation.Status, reservation.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrReservationExists
		}
		return fmt.Errorf("repository: failed to create reservation %s for user %d: %w", reservation.ID, reservation.UserID, err)
	}

	return nil
}

// GetReservationsByUserID получает бронирования пользователя в порядке создания
func (r *ReservationRepository) GetReservationsByUserID(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, category, name, total, details, status, created_at 
		 FROM reservations 
		 WHERE user_id = $1 
		 ORDER BY created_at ASC, id ASC`,
		userID,
	)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to get reservations for user %d: %w", userID, err)
	}
	defer rows.Close()

	var reservations []*domain.Reservation
	for rows.Next() {
		res := &domain.Reservation{}
		err := rows.Scan(&res.ID, &res.UserID, &res.Category, &res.Name, &res.Total, &res.Details, &res.Status, &res.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating reservations: %w", err)
	}

	return reservations, nil
}

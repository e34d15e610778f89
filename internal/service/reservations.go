package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avc/maya-storefront/internal/domain"
	"github.com/avc/maya-storefront/internal/gateway"
	"go.uber.org/zap"
)

// ReservationService реализует domain.ReservationService поверх хранилища
type ReservationService struct {
	repo   domain.ReservationRepository
	ids    *gateway.IDGenerator
	now    func() time.Time
	logger *zap.Logger
}

// NewReservationService создает новый ReservationService.
// ids должен быть тем же генератором, что и у витрин, чтобы идентификаторы не пересекались.
func NewReservationService(repo domain.ReservationRepository, ids *gateway.IDGenerator, logger *zap.Logger) *ReservationService {
	if ids == nil {
		ids = gateway.NewIDGenerator()
	}
	return &ReservationService{
		repo:   repo,
		ids:    ids,
		now:    time.Now,
		logger: logger,
	}
}

// PersistReservation сохраняет подтвержденную запись истории.
// Повторное сохранение той же записи возвращает domain.ErrReservationExists.
func (s *ReservationService) PersistReservation(ctx context.Context, job domain.ReservationJob) error {
	entry := job.Entry
	if job.UserID <= 0 || entry.ID == "" {
		return fmt.Errorf("%w: reservation needs user and entry id", ErrInvalidInput)
	}
	if !entry.Category.ActionKind().Persisted() {
		return fmt.Errorf("%w: %s are not stored as reservations", ErrInvalidInput, entry.Category)
	}

	details, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("reservation service: failed to encode entry %s: %w", entry.ID, err)
	}

	reservation := &domain.Reservation{
		ID:        entry.ID,
		UserID:    job.UserID,
		Category:  entry.Category,
		Name:      entry.Name,
		Total:     entry.Total,
		Details:   details,
		Status:    entry.Status,
		CreatedAt: entry.Date,
	}
	if reservation.Status == "" {
		reservation.Status = domain.EntryStatusConfirmed
	}

	if err := s.repo.CreateReservation(ctx, reservation); err != nil {
		// Не оборачиваем sentinel error
		if errors.Is(err, domain.ErrReservationExists) {
			return err
		}
		return fmt.Errorf("reservation service: failed to persist %s for user %d: %w", entry.ID, job.UserID, err)
	}

	s.logger.Debug("reservation persisted",
		zap.Int64("user_id", job.UserID),
		zap.String("entry_id", entry.ID),
		zap.String("category", string(entry.Category)),
	)

	return nil
}

// Reserve проверяет и сохраняет бронирование, пришедшее через API.
// Без идентификатора или даты запись получает новые.
func (s *ReservationService) Reserve(ctx context.Context, userID int64, kind domain.ActionKind, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if !kind.Persisted() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}

	req, err := domain.NewActionRequest(kind, entry.Payload)
	if err != nil {
		return nil, err
	}

	category := kind.Category()
	if entry.ID != "" && !strings.HasPrefix(entry.ID, category.IDPrefix()) {
		return nil, fmt.Errorf("%w: id %q does not belong to %s", ErrInvalidInput, entry.ID, category)
	}

	now := s.now()
	reserved := domain.LedgerEntry{
		ID:       entry.ID,
		Category: category,
		Payload:  req.Payload(),
		Date:     entry.Date,
		Status:   domain.EntryStatusConfirmed,
	}
	if reserved.ID == "" {
		reserved.ID = s.ids.Next(category, now)
	}
	if reserved.Date.IsZero() {
		reserved.Date = now
	}

	if err := s.PersistReservation(ctx, domain.ReservationJob{UserID: userID, Entry: reserved}); err != nil {
		return nil, err
	}

	return &reserved, nil
}

// History возвращает сохраненные бронирования пользователя по разделам
func (s *ReservationService) History(ctx context.Context, userID int64) (*domain.LedgerSnapshot, error) {
	reservations, err := s.repo.GetReservationsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reservation service: failed to get history for user %d: %w", userID, err)
	}

	history := &domain.LedgerSnapshot{
		Hotels:      []domain.LedgerEntry{},
		Restaurants: []domain.LedgerEntry{},
		Experiences: []domain.LedgerEntry{},
		Purchases:   []domain.LedgerEntry{},
	}

	for _, r := range reservations {
		var payload domain.Payload
		if len(r.Details) > 0 {
			if err := json.Unmarshal(r.Details, &payload); err != nil {
				return nil, fmt.Errorf("reservation service: failed to decode reservation %s: %w", r.ID, err)
			}
		}
		// Колонки таблицы главнее копии в details
		payload.Name = r.Name
		payload.Total = r.Total

		entry := domain.LedgerEntry{
			ID:       r.ID,
			Category: r.Category,
			Payload:  payload,
			Date:     r.CreatedAt,
			Status:   r.Status,
		}

		switch r.Category {
		case domain.LedgerCategoryHotels:
			history.Hotels = append(history.Hotels, entry)
		case domain.LedgerCategoryRestaurants:
			history.Restaurants = append(history.Restaurants, entry)
		case domain.LedgerCategoryExperiences:
			history.Experiences = append(history.Experiences, entry)
		default:
			history.Purchases = append(history.Purchases, entry)
		}
		history.TotalSpent += r.Total
	}

	return history, nil
}

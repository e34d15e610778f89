package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/avc/maya-storefront/internal/domain"
	"github.com/avc/maya-storefront/internal/gateway"
	"github.com/avc/maya-storefront/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthOutcome представляет результат входа через витрину
type AuthOutcome struct {
	Result   *domain.AuthResult
	Replayed *domain.LedgerEntry // Отложенное действие, подтвержденное после входа
}

// StorefrontService хранит открытые витрины, у каждой свой шлюз.
// Истории и генератор идентификаторов общие для всех витрин процесса.
type StorefrontService struct {
	mu          sync.RWMutex
	storefronts map[string]*gateway.Gateway

	auth       domain.AuthService
	ledgers    *gateway.LedgerBook
	ids        *gateway.IDGenerator
	dispatcher domain.Dispatcher
	clock      func() time.Time
	logger     *zap.Logger
}

// NewStorefrontService создает новый StorefrontService
func NewStorefrontService(
	auth domain.AuthService,
	ledgers *gateway.LedgerBook,
	ids *gateway.IDGenerator,
	dispatcher domain.Dispatcher,
	logger *zap.Logger,
) *StorefrontService {
	return &StorefrontService{
		storefronts: make(map[string]*gateway.Gateway),
		auth:        auth,
		ledgers:     ledgers,
		ids:         ids,
		dispatcher:  dispatcher,
		clock:       time.Now,
		logger:      logger,
	}
}

// Open открывает новую витрину и возвращает ее идентификатор
func (s *StorefrontService) Open() string {
	id := uuid.NewString()

	g := gateway.New(gateway.Deps{
		Ledgers:    s.ledgers,
		IDs:        s.ids,
		Dispatcher: s.dispatcher,
		Clock:      s.clock,
		Logger:     s.logger.With(zap.String("storefront_id", id)),
	})

	s.mu.Lock()
	s.storefronts[id] = g
	s.mu.Unlock()

	metrics.StorefrontOpened()
	s.logger.Debug("storefront opened", zap.String("storefront_id", id))

	return id
}

// Close закрывает витрину. Отложенное действие теряется, истории остаются.
func (s *StorefrontService) Close(id string) error {
	s.mu.Lock()
	_, ok := s.storefronts[id]
	delete(s.storefronts, id)
	s.mu.Unlock()

	if !ok {
		return ErrStorefrontNotFound
	}

	metrics.StorefrontClosed()
	s.logger.Debug("storefront closed", zap.String("storefront_id", id))
	return nil
}

func (s *StorefrontService) get(id string) (*gateway.Gateway, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.storefronts[id]
	if !ok {
		return nil, ErrStorefrontNotFound
	}
	return g, nil
}

// State возвращает состояние витрины
func (s *StorefrontService) State(id string) (domain.StorefrontState, error) {
	g, err := s.get(id)
	if err != nil {
		return domain.StorefrontState{}, err
	}
	return g.State(), nil
}

// OpenModal открывает окно витрины
func (s *StorefrontService) OpenModal(id string, kind domain.ModalKind, data json.RawMessage) (domain.ModalTarget, error) {
	g, err := s.get(id)
	if err != nil {
		return domain.ModalTarget{}, err
	}
	g.Modal().Open(kind, data)
	return g.Modal().Current(), nil
}

// CloseModal закрывает окно витрины
func (s *StorefrontService) CloseModal(id string) error {
	g, err := s.get(id)
	if err != nil {
		return err
	}
	g.Modal().Close()
	return nil
}

// Cart возвращает содержимое корзины
func (s *StorefrontService) Cart(id string) (domain.CartView, error) {
	g, err := s.get(id)
	if err != nil {
		return domain.CartView{}, err
	}
	return g.Cart().View(), nil
}

// AddToCart добавляет товар в корзину
func (s *StorefrontService) AddToCart(id string, item domain.CartItem) (domain.CartView, error) {
	g, err := s.get(id)
	if err != nil {
		return domain.CartView{}, err
	}
	return g.AddToCart(item), nil
}

// RemoveFromCart удаляет из корзины все товары с указанным id
func (s *StorefrontService) RemoveFromCart(id string, itemID int64) (domain.CartView, error) {
	g, err := s.get(id)
	if err != nil {
		return domain.CartView{}, err
	}
	return g.RemoveFromCart(itemID), nil
}

// RequestAction передает запрос на действие шлюзу витрины
func (s *StorefrontService) RequestAction(id string, req domain.ActionRequest) (gateway.Outcome, error) {
	g, err := s.get(id)
	if err != nil {
		return gateway.Outcome{}, err
	}
	return g.RequestAction(req)
}

// Checkout оформляет оплату корзины витрины
func (s *StorefrontService) Checkout(id string) (gateway.Outcome, error) {
	g, err := s.get(id)
	if err != nil {
		return gateway.Outcome{}, err
	}
	return g.Checkout()
}

// Register регистрирует пользователя и входит в витрину.
// Ошибки регистрации не меняют состояние витрины.
func (s *StorefrontService) Register(ctx context.Context, id, name, email, password string) (*AuthOutcome, error) {
	g, err := s.get(id)
	if err != nil {
		return nil, err
	}

	result, err := s.auth.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}

	return s.signIn(g, result)
}

// Login входит в витрину существующим пользователем
func (s *StorefrontService) Login(ctx context.Context, id, email, password string) (*AuthOutcome, error) {
	g, err := s.get(id)
	if err != nil {
		return nil, err
	}

	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.signIn(g, result)
}

func (s *StorefrontService) signIn(g *gateway.Gateway, result *domain.AuthResult) (*AuthOutcome, error) {
	replayed, err := g.ResolveAuthentication(result.User.Identity())
	if err != nil {
		return nil, err
	}
	return &AuthOutcome{Result: result, Replayed: replayed}, nil
}

// Logout выходит из витрины
func (s *StorefrontService) Logout(id string) error {
	g, err := s.get(id)
	if err != nil {
		return err
	}
	g.Logout()
	return nil
}

// Ledger возвращает историю пользователя, вошедшего в витрину
func (s *StorefrontService) Ledger(id string) (domain.LedgerSnapshot, error) {
	g, err := s.get(id)
	if err != nil {
		return domain.LedgerSnapshot{}, err
	}

	snapshot, ok := g.Ledger()
	if !ok {
		return domain.LedgerSnapshot{}, ErrNotAuthenticated
	}
	return snapshot, nil
}

// Len возвращает количество открытых витрин
func (s *StorefrontService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.storefronts)
}

// Package gateway реализует шлюз подтверждения действий витрины:
// проверку входа перед бронированием, отложенное действие на время входа
// и запись подтвержденных действий в историю аккаунта.
package gateway

import (
	"strings"
	"sync"
	"time"

	"github.com/avc/maya-storefront/internal/domain"
	"github.com/avc/maya-storefront/internal/metrics"
	"go.uber.org/zap"
)

// Deps содержит зависимости шлюза
type Deps struct {
	Session    *SessionStore
	Cart       *CartStore
	Modal      *ModalRouter
	Ledgers    *LedgerBook
	IDs        *IDGenerator
	Dispatcher domain.Dispatcher // Может быть nil: записи не сохраняются на сервере
	Clock      func() time.Time
	Logger     *zap.Logger
}

// Outcome представляет результат запроса на действие
type Outcome struct {
	Deferred bool               // Действие ждет входа пользователя
	Entry    *domain.LedgerEntry // Запись истории, если действие подтверждено
}

// Gateway координирует сессию, корзину, окна и историю.
// Хранит не больше одного отложенного действия: новый запрос заменяет старый.
type Gateway struct {
	mu         sync.Mutex
	session    *SessionStore
	cart       *CartStore
	modal      *ModalRouter
	ledgers    *LedgerBook
	ids        *IDGenerator
	dispatcher domain.Dispatcher
	now        func() time.Time
	logger     *zap.Logger

	pending *domain.ActionRequest
}

// New создает шлюз. Незаданные зависимости заменяются пустыми.
func New(deps Deps) *Gateway {
	g := &Gateway{
		session:    deps.Session,
		cart:       deps.Cart,
		modal:      deps.Modal,
		ledgers:    deps.Ledgers,
		ids:        deps.IDs,
		dispatcher: deps.Dispatcher,
		now:        deps.Clock,
		logger:     deps.Logger,
	}

	if g.session == nil {
		g.session = NewSessionStore()
	}
	if g.cart == nil {
		g.cart = NewCartStore()
	}
	if g.modal == nil {
		g.modal = NewModalRouter()
	}
	if g.ledgers == nil {
		g.ledgers = NewLedgerBook()
	}
	if g.ids == nil {
		g.ids = NewIDGenerator()
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}

	return g
}

// RequestAction принимает запрос на бронирование или оплату корзины.
// Без входа запрос откладывается и открывается окно входа; иначе подтверждается сразу.
func (g *Gateway) RequestAction(req domain.ActionRequest) (Outcome, error) {
	if req.IsZero() {
		return Outcome{}, domain.ErrInvalidAction
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.request(req)
}

// Checkout оформляет оплату корзины по ее содержимому на текущий момент.
// Корзина очищается только при подтверждении.
func (g *Gateway) Checkout() (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	items := g.cart.Items()
	if len(items) == 0 {
		return Outcome{}, domain.ErrEmptyCart
	}

	req, err := domain.NewCartRequest(items, cartTotal(items))
	if err != nil {
		return Outcome{}, err
	}

	return g.request(req)
}

func (g *Gateway) request(req domain.ActionRequest) (Outcome, error) {
	session := g.session.Current()
	if !session.Authenticated {
		g.pending = &req
		g.modal.Open(domain.ModalAuth, nil)

		metrics.ActionDeferred(string(req.Kind()))
		g.logger.Info("action deferred until authentication",
			zap.String("kind", string(req.Kind())),
			zap.Float64("total", req.Payload().Total),
		)
		return Outcome{Deferred: true}, nil
	}

	entry := g.commit(*session.Identity, req)
	return Outcome{Entry: &entry}, nil
}

// ResolveAuthentication вызывается после успешного входа или регистрации.
// Отложенное действие подтверждается ровно один раз и удаляется.
func (g *Gateway) ResolveAuthentication(identity domain.Identity) (*domain.LedgerEntry, error) {
	if strings.TrimSpace(identity.Email) == "" {
		return nil, domain.ErrInvalidIdentity
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.session.Authenticate(identity)
	g.modal.Close()

	if g.pending == nil {
		return nil, nil
	}

	req := *g.pending
	g.pending = nil

	entry := g.commit(identity, req)
	metrics.ActionReplayed(string(req.Kind()))
	g.logger.Info("pending action replayed",
		zap.String("kind", string(req.Kind())),
		zap.String("entry_id", entry.ID),
	)

	return &entry, nil
}

// Logout сбрасывает сессию, корзину и отложенное действие. История сохраняется.
func (g *Gateway) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()

	discarded := g.pending != nil

	g.session.Clear()
	g.cart.Clear()
	g.pending = nil
	g.modal.Close()

	g.logger.Info("storefront logged out", zap.Bool("pending_discarded", discarded))
}

// AddToCart добавляет товар в корзину витрины.
// Выполняется под g.mu, поэтому не пересекается с оформлением корзины.
func (g *Gateway) AddToCart(item domain.CartItem) domain.CartView {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cart.Add(item)
	return g.cart.View()
}

// RemoveFromCart удаляет из корзины все товары с указанным id
func (g *Gateway) RemoveFromCart(itemID int64) domain.CartView {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cart.Remove(itemID)
	return g.cart.View()
}

// Pending возвращает отложенное действие, если оно есть
func (g *Gateway) Pending() (domain.ActionRequest, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending == nil {
		return domain.ActionRequest{}, false
	}
	return *g.pending, true
}

// State возвращает состояние витрины для шапки и окон
func (g *Gateway) State() domain.StorefrontState {
	g.mu.Lock()
	defer g.mu.Unlock()

	items := g.cart.Items()
	return domain.StorefrontState{
		Session:      g.session.Current(),
		CartCount:    len(items),
		Cart:         items,
		Modal:        g.modal.Current(),
		AwaitingAuth: g.pending != nil,
	}
}

// Ledger возвращает историю вошедшего пользователя.
// false означает, что в витрине никто не вошел.
func (g *Gateway) Ledger() (domain.LedgerSnapshot, bool) {
	session := g.session.Current()
	if !session.Authenticated {
		return domain.LedgerSnapshot{}, false
	}
	return g.ledgers.For(AccountKey(*session.Identity)).Snapshot(), true
}

// Cart возвращает корзину витрины
func (g *Gateway) Cart() *CartStore {
	return g.cart
}

// Modal возвращает роутер окон витрины
func (g *Gateway) Modal() *ModalRouter {
	return g.modal
}

// commit записывает действие в историю, закрывает окно и отправляет запись
// на сохранение, не дожидаясь результата. Вызывается под g.mu.
func (g *Gateway) commit(identity domain.Identity, req domain.ActionRequest) domain.LedgerEntry {
	now := g.now()
	kind := req.Kind()
	category := kind.Category()

	entry := domain.LedgerEntry{
		ID:       g.ids.Next(category, now),
		Category: category,
		Payload:  req.Payload(),
		Date:     now,
		Status:   domain.EntryStatusConfirmed,
	}

	g.ledgers.For(AccountKey(identity)).Append(entry)
	g.modal.Close()

	if kind == domain.ActionKindCart {
		g.cart.Clear()
	}

	metrics.ActionCommitted(string(kind), entry.Total)
	g.logger.Info("action confirmed",
		zap.String("kind", string(kind)),
		zap.String("entry_id", entry.ID),
		zap.String("name", entry.Name),
		zap.Float64("total", entry.Total),
	)

	if kind.Persisted() && g.dispatcher != nil {
		job := domain.ReservationJob{UserID: identity.UserID, Email: identity.Email, Entry: entry}
		if !g.dispatcher.Dispatch(job) {
			g.logger.Warn("reservation not queued for persistence",
				zap.String("entry_id", entry.ID),
			)
		}
	}

	return entry
}

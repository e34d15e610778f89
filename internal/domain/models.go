package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ActionKind представляет тип действия, которое требует подтверждения
type ActionKind string

const (
	ActionKindHotel      ActionKind = "hotel"
	ActionKindRestaurant ActionKind = "restaurant"
	ActionKindExperience ActionKind = "experience"
	ActionKindCart       ActionKind = "cart"
)

// ParseActionKind разбирает тип действия из строки
func ParseActionKind(s string) (ActionKind, error) {
	switch kind := ActionKind(s); kind {
	case ActionKindHotel, ActionKindRestaurant, ActionKindExperience, ActionKindCart:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Category возвращает раздел истории, в который попадает действие
func (k ActionKind) Category() LedgerCategory {
	switch k {
	case ActionKindHotel:
		return LedgerCategoryHotels
	case ActionKindRestaurant:
		return LedgerCategoryRestaurants
	case ActionKindExperience:
		return LedgerCategoryExperiences
	default:
		return LedgerCategoryPurchases
	}
}

// Persisted сообщает, отправляется ли подтвержденное действие в сервис бронирований.
// Покупки в корзине на сервере не сохраняются.
func (k ActionKind) Persisted() bool {
	return k == ActionKindHotel || k == ActionKindRestaurant || k == ActionKindExperience
}

// LedgerCategory представляет раздел истории пользователя
type LedgerCategory string

const (
	LedgerCategoryHotels      LedgerCategory = "hotels"
	LedgerCategoryRestaurants LedgerCategory = "restaurants"
	LedgerCategoryExperiences LedgerCategory = "experiences"
	LedgerCategoryPurchases   LedgerCategory = "purchases"
)

// IDPrefix возвращает префикс идентификатора записи
func (c LedgerCategory) IDPrefix() string {
	switch c {
	case LedgerCategoryHotels:
		return "H"
	case LedgerCategoryRestaurants:
		return "R"
	case LedgerCategoryExperiences:
		return "E"
	default:
		return "P"
	}
}

// ActionKind возвращает тип действия, которое создает записи раздела
func (c LedgerCategory) ActionKind() ActionKind {
	switch c {
	case LedgerCategoryHotels:
		return ActionKindHotel
	case LedgerCategoryRestaurants:
		return ActionKindRestaurant
	case LedgerCategoryExperiences:
		return ActionKindExperience
	default:
		return ActionKindCart
	}
}

// EntryStatus представляет статус записи истории
type EntryStatus string

const (
	EntryStatusConfirmed EntryStatus = "confirmed"
)

// Identity представляет личность вошедшего пользователя
type Identity struct {
	UserID int64  `json:"-"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Session представляет состояние аутентификации витрины.
// Identity заполнено тогда и только тогда, когда Authenticated == true.
type Session struct {
	Authenticated bool      `json:"authenticated"`
	Identity      *Identity `json:"identity"`
}

// CartItem представляет товар ремесленников в корзине
type CartItem struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Payload содержит данные действия, посчитанные формой бронирования
type Payload struct {
	Name         string     `json:"name"`
	Total        float64    `json:"total"`
	Personas     int        `json:"personas,omitempty"`
	Items        []CartItem `json:"items,omitempty"`
	CheckinDate  string     `json:"checkin_date,omitempty"`
	CheckoutDate string     `json:"checkout_date,omitempty"`
	Addons       []string   `json:"addons,omitempty"`
	MenuItems    []string   `json:"menu_items,omitempty"`
	Details      string     `json:"details,omitempty"`
}

// Clone возвращает копию без общих срезов
func (p Payload) Clone() Payload {
	if p.Items != nil {
		p.Items = append([]CartItem(nil), p.Items...)
	}
	if p.Addons != nil {
		p.Addons = append([]string(nil), p.Addons...)
	}
	if p.MenuItems != nil {
		p.MenuItems = append([]string(nil), p.MenuItems...)
	}
	return p
}

// LedgerEntry представляет подтвержденное действие. После создания не изменяется.
type LedgerEntry struct {
	ID       string         `json:"id"`
	Category LedgerCategory `json:"category"`
	Payload
	Date   time.Time   `json:"date"`
	Status EntryStatus `json:"status"`
}

// LedgerSnapshot представляет историю пользователя по разделам
type LedgerSnapshot struct {
	Hotels      []LedgerEntry `json:"hotels"`
	Restaurants []LedgerEntry `json:"restaurants"`
	Experiences []LedgerEntry `json:"experiences"`
	Purchases   []LedgerEntry `json:"purchases"`
	TotalSpent  float64       `json:"total_spent"`
}

// Len возвращает общее количество записей
func (s LedgerSnapshot) Len() int {
	return len(s.Hotels) + len(s.Restaurants) + len(s.Experiences) + len(s.Purchases)
}

// CartView представляет содержимое корзины с итогом
type CartView struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`
	Total float64    `json:"total"`
}

// ModalKind представляет тип открытого окна
type ModalKind string

const (
	ModalNone       ModalKind = "none"
	ModalHotel      ModalKind = "hotel"
	ModalRestaurant ModalKind = "restaurant"
	ModalExperience ModalKind = "experience"
	ModalCart       ModalKind = "cart"
	ModalTransport  ModalKind = "transport"
	ModalAuth       ModalKind = "auth"
)

// ParseModalKind разбирает тип окна из строки
func ParseModalKind(s string) (ModalKind, error) {
	switch kind := ModalKind(s); kind {
	case ModalNone, ModalHotel, ModalRestaurant, ModalExperience, ModalCart, ModalTransport, ModalAuth:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModal, s)
	}
}

// ModalTarget представляет единственное открытое окно
type ModalTarget struct {
	Kind ModalKind       `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// StorefrontState представляет состояние витрины для шапки и окон
type StorefrontState struct {
	Session      Session     `json:"session"`
	CartCount    int         `json:"cart_count"`
	Cart         []CartItem  `json:"cart"`
	Modal        ModalTarget `json:"modal"`
	AwaitingAuth bool        `json:"awaiting_auth"`
}

// User представляет пользователя системы
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Не отправляем хеш в JSON
	CreatedAt    time.Time `json:"created_at"`
}

// Identity возвращает личность пользователя для сессии
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email}
}

// AuthResult представляет результат входа или регистрации
type AuthResult struct {
	User  *User
	Token string
}

// Reservation представляет бронирование, сохраненное на сервере
type Reservation struct {
	ID        string          `json:"id"`
	UserID    int64           `json:"-"`
	Category  LedgerCategory  `json:"category"`
	Name      string          `json:"name"`
	Total     float64         `json:"total"`
	Details   json.RawMessage `json:"details,omitempty"` // Полный payload записи
	Status    EntryStatus     `json:"status"`
	CreatedAt time.Time       `json:"date"`
}

// ReservationJob представляет задачу на сохранение подтвержденной записи
type ReservationJob struct {
	UserID int64
	Email  string
	Entry  LedgerEntry
}

package domain

import (
	"fmt"
	"math"
	"strings"
)

// DefaultPurchaseName название записи о покупке в корзине
const DefaultPurchaseName = "Artesanías"

// ActionRequest представляет проверенный запрос на действие.
// Создается только фабриками пакета, поэтому шлюз не проверяет данные повторно.
type ActionRequest struct {
	kind    ActionKind
	payload Payload
}

// Kind возвращает тип действия
func (r ActionRequest) Kind() ActionKind {
	return r.kind
}

// Payload возвращает копию данных действия
func (r ActionRequest) Payload() Payload {
	return r.payload.Clone()
}

// IsZero сообщает, что запрос не был создан фабрикой
func (r ActionRequest) IsZero() bool {
	return r.kind == ""
}

// NewActionRequest проверяет данные и создает запрос на действие нужного типа
func NewActionRequest(kind ActionKind, p Payload) (ActionRequest, error) {
	p = p.Clone()
	p.Name = strings.TrimSpace(p.Name)

	if err := validateMoney("total", p.Total); err != nil {
		return ActionRequest{}, err
	}

	switch kind {
	case ActionKindHotel, ActionKindRestaurant:
		if p.Name == "" {
			return ActionRequest{}, fmt.Errorf("%w: name is required", ErrInvalidPayload)
		}
	case ActionKindExperience:
		if p.Name == "" {
			return ActionRequest{}, fmt.Errorf("%w: name is required", ErrInvalidPayload)
		}
		if p.Personas < 1 {
			return ActionRequest{}, fmt.Errorf("%w: personas must be at least 1", ErrInvalidPayload)
		}
	case ActionKindCart:
		if len(p.Items) == 0 {
			return ActionRequest{}, ErrEmptyCart
		}
		for _, item := range p.Items {
			if err := validateMoney("item price", item.Price); err != nil {
				return ActionRequest{}, err
			}
		}
		if p.Name == "" {
			p.Name = DefaultPurchaseName
		}
	default:
		return ActionRequest{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return ActionRequest{kind: kind, payload: p}, nil
}

// NewHotelRequest создает запрос на бронирование отеля
func NewHotelRequest(name string, total float64, checkin, checkout string, addons []string) (ActionRequest, error) {
	return NewActionRequest(ActionKindHotel, Payload{
		Name:         name,
		Total:        total,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		Addons:       addons,
	})
}

// NewRestaurantRequest создает запрос на заказ в ресторане
func NewRestaurantRequest(name string, total float64, menuItems []string) (ActionRequest, error) {
	return NewActionRequest(ActionKindRestaurant, Payload{
		Name:      name,
		Total:     total,
		MenuItems: menuItems,
	})
}

// NewExperienceRequest создает запрос на бронирование экскурсии
func NewExperienceRequest(name string, total float64, personas int, details string) (ActionRequest, error) {
	return NewActionRequest(ActionKindExperience, Payload{
		Name:     name,
		Total:    total,
		Personas: personas,
		Details:  details,
	})
}

// NewCartRequest создает запрос на оплату корзины.
// total считает вызывающий код в момент оформления.
func NewCartRequest(items []CartItem, total float64) (ActionRequest, error) {
	return NewActionRequest(ActionKindCart, Payload{
		Items: items,
		Total: total,
	})
}

func validateMoney(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidPayload, field)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidPayload, field)
	}
	return nil
}

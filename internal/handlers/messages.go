package handlers

import (
	"fmt"

	"github.com/avc/maya-storefront/internal/domain"
)

// Сообщения для пользователя витрины

func confirmationMessage(entry *domain.LedgerEntry) string {
	switch entry.Category {
	case domain.LedgerCategoryHotels:
		return fmt.Sprintf("Reserva confirmada en %s por $%.2f MXN", entry.Name, entry.Total)
	case domain.LedgerCategoryRestaurants:
		return fmt.Sprintf("Pedido confirmado en %s por $%.2f MXN", entry.Name, entry.Total)
	case domain.LedgerCategoryExperiences:
		return fmt.Sprintf("Experiencia \"%s\" reservada para %d persona(s) por $%.2f MXN", entry.Name, entry.Personas, entry.Total)
	default:
		return "Acción confirmada"
	}
}

const (
	deferredMessage = "Inicia sesión o crea una cuenta para continuar"
	logoutMessage   = "Sesión cerrada exitosamente"
)

func addedToCartMessage(item domain.CartItem) string {
	return fmt.Sprintf("%s agregado al carrito!", item.Name)
}

func welcomeMessage(user *domain.User, registered bool) string {
	if registered {
		return fmt.Sprintf("¡Bienvenido %s! Tu cuenta ha sido creada exitosamente.", user.Name)
	}
	return fmt.Sprintf("¡Bienvenido de vuelta %s!", user.Name)
}

package repository

import "github.com/tu-usuario/marketplace-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	GetByNumber(orderNumber string) (*entity.Order, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Order, error)
	// UpdateStatus hace compare-and-swap sobre el estado logístico.
	UpdateStatus(id, expected, next string) (bool, error)
	UpdatePaymentStatus(id, paymentStatus string) error
}

package repository

import "github.com/tu-usuario/marketplace-api/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	GetByOrderID(orderID string) (*entity.Payment, error)
	GetByTransactionID(transactionID string) (*entity.Payment, error)
	Update(payment *entity.Payment) error
}

package repository

import "github.com/tu-usuario/marketplace-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByUserID(userID string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	// UpdateStatus hace compare-and-swap: solo escribe si el estado actual en
	// DB sigue siendo expected. Devuelve false si otro request ganó la carrera.
	UpdateStatus(id, expected, next, reason string) (bool, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Supplier, error)
}

package repository

import "github.com/tu-usuario/marketplace-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	ListBySupplier(supplierID string, limit, offset int) ([]*entity.Product, error)
	// ListPublic lista solo productos active de proveedores approved.
	ListPublic(limit, offset int) ([]*entity.Product, error)
	// AdjustStock suma delta (negativo para descuentos) y falla si el
	// resultado quedaría por debajo de cero.
	AdjustStock(id string, delta int) error
}

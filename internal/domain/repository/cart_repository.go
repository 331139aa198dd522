package repository

import "github.com/tu-usuario/marketplace-api/internal/domain/entity"

// CartRepository define el puerto de persistencia para Cart y sus líneas.
type CartRepository interface {
	Create(cart *entity.Cart) error
	GetByID(id string) (*entity.Cart, error)
	// GetActiveByUser devuelve el único carrito active del usuario, o nil.
	GetActiveByUser(userID string) (*entity.Cart, error)
	// SaveItems reemplaza las líneas y persiste los totales recalculados.
	SaveItems(cart *entity.Cart) error
	// UpdateStatus hace compare-and-swap sobre el estado del carrito.
	UpdateStatus(id, expected, next string) (bool, error)
	// ExpireStale marca abandoned los carritos active con expires_at vencido.
	ExpireStale() (int64, error)
}

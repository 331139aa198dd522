package repository

import "github.com/tu-usuario/marketplace-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos de lectura devuelven nil (sin error) cuando no hay fila.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByGoogleID(googleID string) (*entity.User, error)
	Update(user *entity.User) error
}

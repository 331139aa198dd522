package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCartEmpty          = errors.New("el carrito está vacío")
	ErrPaymentNotRefunded = errors.New("el pago asociado no ha sido reembolsado")
	ErrRefundExceedsTotal = errors.New("el reembolso excede el monto restante del pago")
	ErrCollaborator       = errors.New("fallo de colaborador externo")
)

// InvalidTransitionError indica que el estado solicitado no es alcanzable
// desde el estado actual según la tabla de transiciones de la entidad.
type InvalidTransitionError struct {
	Entity string // "supplier", "order", "payment"
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transición inválida de %s: %s -> %s", e.Entity, e.From, e.To)
}

// IsInvalidTransition reporta si err es un InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var it *InvalidTransitionError
	return errors.As(err, &it)
}

package lifecycle

import (
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
)

// orderNext es el grafo de transiciones de Order. Avance hacia delante por
// pending -> processing -> shipped -> delivered; cancelled y refunded son
// salidas terminales desde estados anteriores a delivered.
var orderNext = map[string]map[string]bool{
	entity.OrderPending: {
		entity.OrderProcessing: true,
		entity.OrderCancelled:  true,
		entity.OrderRefunded:   true,
	},
	entity.OrderProcessing: {
		entity.OrderShipped:   true,
		entity.OrderCancelled: true,
		entity.OrderRefunded:  true,
	},
	entity.OrderShipped: {
		entity.OrderDelivered: true,
		entity.OrderCancelled: true,
		entity.OrderRefunded:  true,
	},
	entity.OrderDelivered: {},
	entity.OrderCancelled: {},
	entity.OrderRefunded:  {},
}

// CanTransitionOrder reporta si el cambio de estado es legal.
func CanTransitionOrder(from, to string) bool {
	return orderNext[from][to]
}

// TransitionOrder valida y devuelve el nuevo estado de la orden.
// refunded exige además que el pago asociado ya esté refunded o
// partially_refunded; de lo contrario falla con ErrPaymentNotRefunded.
func TransitionOrder(current, requested, paymentStatus string) (string, error) {
	if !CanTransitionOrder(current, requested) {
		return "", &domain.InvalidTransitionError{Entity: "order", From: current, To: requested}
	}
	if requested == entity.OrderRefunded {
		if paymentStatus != entity.PaymentRefunded && paymentStatus != entity.PaymentPartiallyRefunded {
			return "", domain.ErrPaymentNotRefunded
		}
	}
	return requested, nil
}

// OrderMutable reporta si la orden admite cambios de estado logístico.
// delivered y cancelled congelan la orden salvo el estado de pago.
func OrderMutable(status string) bool {
	return len(orderNext[status]) > 0
}

package lifecycle

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
)

// paymentNext es el grafo de transiciones de Payment. Los reembolsos no se
// modelan como arista simple: ApplyRefund decide entre partially_refunded y
// refunded según el monto acumulado.
var paymentNext = map[string]map[string]bool{
	entity.PaymentPending: {
		entity.PaymentProcessing: true,
		entity.PaymentPaid:       true,
		entity.PaymentFailed:     true,
		entity.PaymentCancelled:  true,
	},
	entity.PaymentProcessing: {
		entity.PaymentPaid:      true,
		entity.PaymentFailed:    true,
		entity.PaymentCancelled: true,
	},
	entity.PaymentPaid: {
		entity.PaymentPartiallyRefunded: true,
		entity.PaymentRefunded:          true,
	},
	entity.PaymentPartiallyRefunded: {
		entity.PaymentPartiallyRefunded: true,
		entity.PaymentRefunded:          true,
	},
	entity.PaymentFailed:    {},
	entity.PaymentRefunded:  {},
	entity.PaymentCancelled: {},
}

// terminales del proveedor: repetir el mismo resultado debe ser no-op.
var paymentTerminal = map[string]bool{
	entity.PaymentPaid:      true,
	entity.PaymentFailed:    true,
	entity.PaymentCancelled: true,
	entity.PaymentRefunded:  true,
}

// CanTransitionPayment reporta si el cambio de estado es legal.
func CanTransitionPayment(from, to string) bool {
	return paymentNext[from][to]
}

// ApplyProviderResult aplica el estado reportado por el proveedor sobre el
// pago. Devuelve applied=false cuando el webhook repite el resultado terminal
// ya registrado (idempotencia): ni error ni doble aplicación.
func ApplyProviderResult(p *entity.Payment, providerStatus, failureReason string) (applied bool, err error) {
	if p.Status == providerStatus && paymentTerminal[providerStatus] {
		return false, nil
	}
	if !CanTransitionPayment(p.Status, providerStatus) {
		return false, &domain.InvalidTransitionError{Entity: "payment", From: p.Status, To: providerStatus}
	}
	p.Status = providerStatus
	if providerStatus == entity.PaymentFailed {
		p.FailureReason = failureReason
	}
	return true, nil
}

// ApplyRefund acumula un reembolso parcial o total.
// Exige 0 < amount <= restante; el estado resultante es refunded cuando el
// acumulado iguala el monto y partially_refunded en caso contrario.
func ApplyRefund(p *entity.Payment, amount decimal.Decimal) error {
	if !amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	remaining := p.RemainingRefundable()
	if amount.GreaterThan(remaining) {
		return domain.ErrRefundExceedsTotal
	}
	target := entity.PaymentPartiallyRefunded
	if amount.Equal(remaining) {
		target = entity.PaymentRefunded
	}
	if !CanTransitionPayment(p.Status, target) {
		return &domain.InvalidTransitionError{Entity: "payment", From: p.Status, To: target}
	}
	p.RefundedAmount = p.RefundedAmount.Add(amount)
	p.Status = target
	return nil
}

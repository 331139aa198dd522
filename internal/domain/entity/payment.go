package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Payment.
// Invariantes: 0 <= RefundedAmount <= Amount;
// partially_refunded implica 0 < RefundedAmount < Amount;
// refunded implica RefundedAmount == Amount.
const (
	PaymentPending           = "pending"
	PaymentProcessing        = "processing"
	PaymentPaid              = "paid"
	PaymentFailed            = "failed"
	PaymentRefunded          = "refunded"
	PaymentPartiallyRefunded = "partially_refunded"
	PaymentCancelled         = "cancelled"
)

// Payment representa el cobro de una orden. Lo mutan los callbacks del
// proveedor de pagos y las operaciones explícitas de reembolso.
type Payment struct {
	ID             string
	OrderID        string
	UserID         string
	Amount         decimal.Decimal
	Method         string // card, transfer, wallet...
	Provider       string
	Status         string
	TransactionID  string // referencia del proveedor; clave de idempotencia
	RefundedAmount decimal.Decimal
	FailureReason  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RemainingRefundable devuelve el monto aún reembolsable.
func (p *Payment) RemainingRefundable() decimal.Decimal {
	return p.Amount.Sub(p.RefundedAmount)
}

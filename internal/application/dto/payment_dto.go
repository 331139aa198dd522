package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentWebhookRequest cuerpo del callback del proveedor de pagos.
// EventID es la clave de idempotencia: el mismo evento dos veces es no-op.
type PaymentWebhookRequest struct {
	EventID       string          `json:"event_id" validate:"required"`
	TransactionID string          `json:"transaction_id" validate:"required"`
	Status        string          `json:"status" validate:"required,oneof=processing paid failed cancelled"`
	FailureReason string          `json:"failure_reason"`
	Amount        decimal.Decimal `json:"amount"`
}

// RefundRequest entrada para un reembolso explícito (parcial o total).
type RefundRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Reason string          `json:"reason"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"order_id"`
	UserID         string          `json:"user_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	Provider       string          `json:"provider"`
	Status         string          `json:"status"`
	TransactionID  string          `json:"transaction_id,omitempty"`
	RefundedAmount decimal.Decimal `json:"refunded_amount"`
	FailureReason  string          `json:"failure_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Order. Avance hacia delante pending -> processing -> shipped -> delivered;
// cancelled y refunded solo son alcanzables antes de delivered.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderRefunded   = "refunded"
)

// Estados de pago reflejados en la orden (campo independiente del estado logístico).
const (
	OrderPaymentPending  = "pending"
	OrderPaymentPaid     = "paid"
	OrderPaymentFailed   = "failed"
	OrderPaymentRefunded = "refunded"
)

// OrderItem es una línea de la orden: copia congelada del ítem del carrito,
// no una referencia viva al producto.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	Discount    decimal.Decimal
	Subtotal    decimal.Decimal // price * quantity
	Total       decimal.Decimal // subtotal - discount
}

// Order se crea como snapshot de un carrito. Inmutable una vez delivered o
// cancelled, salvo PaymentStatus.
type Order struct {
	ID              string
	UserID          string
	CartID          string // carrito de origen
	OrderNumber     string // único
	Items           []OrderItem
	Subtotal        decimal.Decimal
	ShippingFee     decimal.Decimal
	TaxAmount       decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          string
	PaymentStatus   string
	ShippingAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Cart. converted_to_order es de una sola vía.
const (
	CartActive          = "active"
	CartPendingCheckout = "pending_checkout"
	CartAbandoned       = "abandoned"
	CartConverted       = "converted_to_order"
)

// CartItem es una línea del carrito. Price es el precio unitario congelado
// al momento de añadir; Discount es descuento absoluto por línea.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
	Discount  decimal.Decimal
}

// Cart representa el carrito de compras. Exactamente un carrito active por
// usuario; los totales derivados se recalculan en cada mutación (pricing).
type Cart struct {
	ID             string
	UserID         string
	Items          []CartItem
	TotalAmount    decimal.Decimal // Σ price*quantity
	DiscountAmount decimal.Decimal // descuento a nivel carrito
	FinalAmount    decimal.Decimal // max(0, total - discount)
	Currency       string
	Status         string
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

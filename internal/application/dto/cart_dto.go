package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest entrada para añadir un producto al carrito.
type AddCartItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Discount  decimal.Decimal `json:"discount"`
}

// UpdateCartItemRequest entrada para cambiar la cantidad de una línea.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// ApplyCartDiscountRequest entrada para aplicar descuento a nivel carrito.
type ApplyCartDiscountRequest struct {
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// CartItemResponse línea del carrito con derivados.
type CartItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Total     decimal.Decimal `json:"total"`
}

// CartResponse salida del carrito.
type CartResponse struct {
	ID             string             `json:"id"`
	UserID         string             `json:"user_id"`
	Items          []CartItemResponse `json:"items"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	FinalAmount    decimal.Decimal    `json:"final_amount"`
	Currency       string             `json:"currency"`
	Status         string             `json:"status"`
	ExpiresAt      time.Time          `json:"expires_at"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

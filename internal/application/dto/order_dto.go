package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada del checkout: convierte el carrito activo en orden.
type CreateOrderRequest struct {
	ShippingAddress string          `json:"shipping_address" validate:"required"`
	ShippingFee     decimal.Decimal `json:"shipping_fee"`
	PaymentMethod   string          `json:"payment_method" validate:"required"`
	Provider        string          `json:"provider"`
}

// UpdateOrderStatusRequest entrada para avanzar el estado logístico.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=processing shipped delivered cancelled refunded"`
}

// OrderItemResponse línea congelada de la orden.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Total       decimal.Decimal `json:"total"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	CartID          string              `json:"cart_id"`
	OrderNumber     string              `json:"order_number"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	ShippingFee     decimal.Decimal     `json:"shipping_fee"`
	TaxAmount       decimal.Decimal     `json:"tax_amount"`
	DiscountAmount  decimal.Decimal     `json:"discount_amount"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	ShippingAddress string              `json:"shipping_address"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

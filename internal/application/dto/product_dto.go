package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (proveedor approved).
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Status      string          `json:"status" validate:"omitempty,oneof=draft active inactive"`
}

// UpdateProductRequest entrada para actualizar un producto (dueño o admin).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// UpdateProductStatusRequest entrada para alternar el estado del producto.
type UpdateProductStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft active inactive archived"`
}

// RestockRequest entrada para ajustar stock (delta positivo).
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SupplierID  string          `json:"supplier_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// OwnershipResponse cuádruple de propiedad de un recurso para el caller.
type OwnershipResponse struct {
	IsOwner    bool `json:"is_owner"`
	IsSupplier bool `json:"is_supplier"`
	IsAdmin    bool `json:"is_admin"`
	CanEdit    bool `json:"can_edit"`
	CanDelete  bool `json:"can_delete"`
}

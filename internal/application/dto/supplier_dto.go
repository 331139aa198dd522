package dto

import "time"

// UpdateSupplierRequest entrada para que el proveedor edite su perfil (no el estado).
type UpdateSupplierRequest struct {
	CompanyName        *string `json:"company_name" validate:"omitempty,min=2,max=200"`
	RegistrationNumber *string `json:"registration_number"`
	Address            *string `json:"address"`
}

// UpdateSupplierStatusRequest entrada de admin para mover el estado del proveedor.
// Reason es texto libre para auditoría; por convención acompaña rejected/suspended.
type UpdateSupplierStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected suspended"`
	Reason string `json:"reason"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	CompanyName        string    `json:"company_name"`
	RegistrationNumber string    `json:"registration_number"`
	Address            string    `json:"address"`
	Documents          []string  `json:"documents"`
	Status             string    `json:"status"`
	StatusReason       string    `json:"status_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

package entity

import "time"

// Estados de Supplier. Las transiciones legales viven en lifecycle.SupplierTransitions.
const (
	SupplierPending   = "pending"
	SupplierApproved  = "approved"
	SupplierRejected  = "rejected"
	SupplierSuspended = "suspended"
)

// Supplier representa el perfil comercial de un usuario con rol supplier.
// Se crea en pending al completar el registro; solo admin puede cambiar el
// estado. Nunca se borra en flujo normal: el ciclo de vida es por estado.
type Supplier struct {
	ID                 string
	UserID             string // dueño del perfil
	CompanyName        string
	RegistrationNumber string
	Address            string
	Documents          []string // URLs de documentos subidos
	Status             string
	StatusReason       string // texto libre registrado en rejected/suspended
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Product. No forman máquina estricta: dueño o admin pueden
// alternar entre ellos, salvo que el borrado físico es solo de admin.
const (
	ProductDraft    = "draft"
	ProductActive   = "active"
	ProductInactive = "inactive"
	ProductArchived = "archived"
)

// Product representa un artículo publicado por un proveedor.
// Solo productos active de proveedores approved aparecen en el listado público.
type Product struct {
	ID          string
	SupplierID  string // dueño; la autorización compara contra este campo
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Images      []string // URLs; máx 10 por lote de subida
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package lifecycle

import (
	"github.com/tu-usuario/marketplace-api/internal/domain"
	"github.com/tu-usuario/marketplace-api/internal/domain/entity"
)

// supplierNext es el grafo de transiciones de Supplier.
// rejected es terminal: un proveedor rechazado debe presentar una solicitud
// nueva (fila nueva en pending), no reabrir la existente.
var supplierNext = map[string]map[string]bool{
	entity.SupplierPending: {
		entity.SupplierApproved:  true,
		entity.SupplierRejected:  true,
		entity.SupplierSuspended: true,
	},
	entity.SupplierApproved: {
		entity.SupplierSuspended: true,
	},
	entity.SupplierSuspended: {
		entity.SupplierApproved: true,
	},
	entity.SupplierRejected: {},
}

// CanTransitionSupplier reporta si el cambio de estado es legal.
func CanTransitionSupplier(from, to string) bool {
	return supplierNext[from][to]
}

// TransitionSupplier valida y devuelve el nuevo estado. reason es texto libre
// para auditoría; por convención acompaña rejected y suspended pero no se exige.
func TransitionSupplier(current, requested string) (string, error) {
	if !CanTransitionSupplier(current, requested) {
		return "", &domain.InvalidTransitionError{Entity: "supplier", From: current, To: requested}
	}
	return requested, nil
}

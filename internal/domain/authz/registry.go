package authz

// rolePermissions es la tabla estática rol -> permisos. Es constante de
// proceso: no existe API de mutación y las lecturas concurrentes son seguras.
var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermProductCreate, PermProductUpdate, PermProductDelete, PermProductStatus,
		PermSupplierApprove, PermSupplierView, PermSupplierUpdate,
		PermCartView, PermCartUpdate, PermCartAdminCleanup,
		PermOrderCreate, PermOrderView, PermOrderUpdate, PermOrderCancel, PermOrderRefund,
		PermPaymentView, PermPaymentRefund,
		PermUserManage,
	},
	RoleAdmin: {
		PermProductCreate, PermProductUpdate, PermProductDelete, PermProductStatus,
		PermSupplierApprove, PermSupplierView, PermSupplierUpdate,
		PermCartView, PermCartAdminCleanup,
		PermOrderView, PermOrderUpdate, PermOrderCancel, PermOrderRefund,
		PermPaymentView, PermPaymentRefund,
		PermUserManage,
	},
	RoleModerator: {
		PermProductUpdate, PermProductStatus,
		PermSupplierView,
		PermOrderView,
	},
	RoleSupplier: {
		PermProductCreate, PermProductUpdate, PermProductDelete, PermProductStatus,
		PermSupplierView, PermSupplierUpdate,
		PermOrderView, PermOrderUpdate,
	},
	RoleCustomer: {
		PermCartView, PermCartUpdate,
		PermOrderCreate, PermOrderView, PermOrderCancel,
		PermPaymentView,
	},
	RoleGuest: {},
}

// adminTier son los roles que saltan el eje de propiedad del guard.
var adminTier = map[Role]bool{
	RoleSuperAdmin: true,
	RoleAdmin:      true,
	RoleModerator:  true,
}

// IsAdminTier reporta si el rol pertenece al nivel administrativo.
func IsAdminTier(role Role) bool {
	return adminTier[role]
}

// PermissionsByRoles deriva el conjunto efectivo de permisos como la unión
// sobre todos los roles. Función pura y total: roles desconocidos aportan
// el conjunto vacío, nunca falla.
func PermissionsByRoles(roles []Role) map[Permission]bool {
	set := make(map[Permission]bool)
	for _, r := range roles {
		for _, p := range rolePermissions[r] {
			set[p] = true
		}
	}
	return set
}

// AllPermissions devuelve el catálogo completo (para validación del registro).
func AllPermissions() []Permission {
	return []Permission{
		PermProductCreate, PermProductUpdate, PermProductDelete, PermProductStatus,
		PermSupplierApprove, PermSupplierView, PermSupplierUpdate,
		PermCartView, PermCartUpdate, PermCartAdminCleanup,
		PermOrderCreate, PermOrderView, PermOrderUpdate, PermOrderCancel, PermOrderRefund,
		PermPaymentView, PermPaymentRefund,
		PermUserManage,
	}
}

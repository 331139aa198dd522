package authz

// Role es la categoría gruesa de identidad de un usuario.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleModerator  Role = "moderator"
	RoleSupplier   Role = "supplier"
	RoleCustomer   Role = "customer"
	RoleGuest      Role = "guest"
)

// Permission es una capacidad fina con formato recurso:acción.
type Permission string

// Catálogo completo de permisos. Todo permiso debe ser alcanzable desde al
// menos un rol en rolePermissions (lo verifica el test del registro).
const (
	PermProductCreate Permission = "product:create"
	PermProductUpdate Permission = "product:update"
	PermProductDelete Permission = "product:delete"
	PermProductStatus Permission = "product:status"

	PermSupplierApprove Permission = "supplier:approve"
	PermSupplierView    Permission = "supplier:view"
	PermSupplierUpdate  Permission = "supplier:update"

	PermCartView         Permission = "cart:view"
	PermCartUpdate       Permission = "cart:update"
	PermCartAdminCleanup Permission = "cart:admin-cleanup"

	PermOrderCreate Permission = "order:create"
	PermOrderView   Permission = "order:view"
	PermOrderUpdate Permission = "order:update"
	PermOrderCancel Permission = "order:cancel"
	PermOrderRefund Permission = "order:refund"

	PermPaymentView   Permission = "payment:view"
	PermPaymentRefund Permission = "payment:refund"

	PermUserManage Permission = "user:manage"
)

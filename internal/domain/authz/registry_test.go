package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/marketplace-api/internal/domain/authz"
)

func TestPermissionsByRoles_UnionDeRoles(t *testing.T) {
	// Un usuario cliente y proveedor a la vez suma ambos conjuntos.
	perms := authz.PermissionsByRoles([]authz.Role{authz.RoleCustomer, authz.RoleSupplier})

	assert.True(t, perms[authz.PermCartUpdate], "del rol customer")
	assert.True(t, perms[authz.PermProductCreate], "del rol supplier")
	assert.False(t, perms[authz.PermSupplierApprove], "ninguno de los dos aprueba proveedores")
}

func TestPermissionsByRoles_RolDesconocido_ConjuntoVacio(t *testing.T) {
	// Total: un rol inexistente aporta el conjunto vacío, nunca falla.
	perms := authz.PermissionsByRoles([]authz.Role{"rol-inventado"})
	assert.Empty(t, perms)
}

func TestPermissionsByRoles_GuestSinPermisos(t *testing.T) {
	perms := authz.PermissionsByRoles([]authz.Role{authz.RoleGuest})
	assert.Empty(t, perms, "guest no tiene permisos; las vistas públicas no pasan por el guard")
}

func TestRegistro_TodoPermisoAlcanzable(t *testing.T) {
	// Cada permiso del catálogo debe ser alcanzable desde al menos un rol;
	// un permiso huérfano sería una capacidad que nadie puede ejercer.
	all := authz.PermissionsByRoles([]authz.Role{
		authz.RoleSuperAdmin, authz.RoleAdmin, authz.RoleModerator,
		authz.RoleSupplier, authz.RoleCustomer, authz.RoleGuest,
	})
	for _, p := range authz.AllPermissions() {
		assert.Truef(t, all[p], "el permiso %s no es alcanzable desde ningún rol", p)
	}
}

func TestRegistro_SuperAdminCubreAdmin(t *testing.T) {
	admin := authz.PermissionsByRoles([]authz.Role{authz.RoleAdmin})
	super := authz.PermissionsByRoles([]authz.Role{authz.RoleSuperAdmin})
	for p := range admin {
		assert.Truef(t, super[p], "super_admin debe incluir el permiso %s de admin", p)
	}
}

func TestIsAdminTier(t *testing.T) {
	assert.True(t, authz.IsAdminTier(authz.RoleSuperAdmin))
	assert.True(t, authz.IsAdminTier(authz.RoleAdmin))
	assert.True(t, authz.IsAdminTier(authz.RoleModerator))
	assert.False(t, authz.IsAdminTier(authz.RoleSupplier))
	assert.False(t, authz.IsAdminTier(authz.RoleCustomer))
	assert.False(t, authz.IsAdminTier(authz.RoleGuest))
}

func TestPermissionsByRoles_EsPuro(t *testing.T) {
	roles := []authz.Role{authz.RoleModerator}
	p1 := authz.PermissionsByRoles(roles)
	p2 := authz.PermissionsByRoles(roles)
	assert.Equal(t, p1, p2, "misma entrada debe producir el mismo conjunto")
}

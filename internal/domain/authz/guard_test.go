package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/marketplace-api/internal/domain/authz"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerUserID = "00000000-0000-0000-0000-000000000001"
	otherUserID = "00000000-0000-0000-0000-000000000002"
)

func caller(userID string, roles ...authz.Role) authz.Caller {
	return authz.NewCaller(userID, roles)
}

func axisOf(t *testing.T, err error) authz.Axis {
	t.Helper()
	var denied *authz.DeniedError
	require.ErrorAs(t, err, &denied, "el error debe ser DeniedError")
	return denied.Axis
}

// ──────────────────────────────────────────────────────────────────────────────
// Eje de rol: basta con uno de los roles requeridos (OR)
// ──────────────────────────────────────────────────────────────────────────────

func TestCheck_RolRequerido_UnoBasta(t *testing.T) {
	req := authz.Requirement{Roles: []authz.Role{authz.RoleAdmin, authz.RoleModerator}}

	assert.NoError(t, authz.Check(caller(otherUserID, authz.RoleModerator), req),
		"moderator debe pasar una ruta admin|moderator")
	assert.NoError(t, authz.Check(caller(otherUserID, authz.RoleCustomer, authz.RoleAdmin), req),
		"multi-rol: tener admin entre varios roles basta")
}

func TestCheck_SinRolRequerido_Deniega(t *testing.T) {
	req := authz.Requirement{Roles: []authz.Role{authz.RoleAdmin}}
	err := authz.Check(caller(otherUserID, authz.RoleCustomer), req)

	require.Error(t, err)
	assert.Equal(t, authz.AxisRole, axisOf(t, err), "debe fallar el eje de rol")
}

func TestCheck_CallerSinRoles_FallaTodoEjeDeRol(t *testing.T) {
	// Un registro de proveedor incompleto produce un caller sin roles.
	req := authz.Requirement{Roles: []authz.Role{authz.RoleSupplier}}
	err := authz.Check(caller(ownerUserID), req)

	require.Error(t, err)
	assert.Equal(t, authz.AxisRole, axisOf(t, err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Eje de permiso: se exigen todos (AND)
// ──────────────────────────────────────────────────────────────────────────────

func TestCheck_PermisosTodosRequeridos(t *testing.T) {
	// customer tiene order:create y order:view, pero no order:update.
	c := caller(otherUserID, authz.RoleCustomer)

	assert.NoError(t, authz.Check(c, authz.Requirement{
		Permissions: []authz.Permission{authz.PermOrderCreate, authz.PermOrderView},
	}))

	err := authz.Check(c, authz.Requirement{
		Permissions: []authz.Permission{authz.PermOrderView, authz.PermOrderUpdate},
	})
	require.Error(t, err, "faltar un solo permiso debe denegar")
	assert.Equal(t, authz.AxisPerm, axisOf(t, err))
}

func TestCheck_PermisoDenegado_ReportaCualFalta(t *testing.T) {
	err := authz.Check(caller(otherUserID, authz.RoleCustomer), authz.Requirement{
		Permissions: []authz.Permission{authz.PermSupplierApprove},
	})

	var denied *authz.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, string(authz.PermSupplierApprove), denied.Missing,
		"el error debe nombrar el permiso faltante")
}

// ──────────────────────────────────────────────────────────────────────────────
// Eje de propiedad: dueño o nivel admin
// ──────────────────────────────────────────────────────────────────────────────

func TestCheck_Propiedad_DuenoPasa(t *testing.T) {
	req := authz.Requirement{OwnerID: ownerUserID}
	assert.NoError(t, authz.Check(caller(ownerUserID, authz.RoleSupplier), req))
}

func TestCheck_Propiedad_NoDuenoDeniega(t *testing.T) {
	req := authz.Requirement{OwnerID: ownerUserID}
	err := authz.Check(caller(otherUserID, authz.RoleSupplier), req)

	require.Error(t, err, "un proveedor no puede tocar recursos de otro proveedor")
	assert.Equal(t, authz.AxisOwnership, axisOf(t, err))
}

func TestCheck_Propiedad_AdminSalta(t *testing.T) {
	req := authz.Requirement{OwnerID: ownerUserID}

	assert.NoError(t, authz.Check(caller(otherUserID, authz.RoleAdmin), req))
	assert.NoError(t, authz.Check(caller(otherUserID, authz.RoleSuperAdmin), req))
	assert.NoError(t, authz.Check(caller(otherUserID, authz.RoleModerator), req),
		"moderator pertenece al nivel admin para el eje de propiedad")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios combinados: los tres ejes en AND
// ──────────────────────────────────────────────────────────────────────────────

func TestCheck_TresEjes_TodosDebenPasar(t *testing.T) {
	req := authz.Requirement{
		Roles:       []authz.Role{authz.RoleSupplier},
		Permissions: []authz.Permission{authz.PermProductUpdate},
		OwnerID:     ownerUserID,
	}

	// Dueño con rol y permiso: pasa.
	assert.NoError(t, authz.Check(caller(ownerUserID, authz.RoleSupplier), req))

	// Rol y permiso correctos pero recurso ajeno: deniega por propiedad.
	err := authz.Check(caller(otherUserID, authz.RoleSupplier), req)
	assert.Equal(t, authz.AxisOwnership, axisOf(t, err))

	// Cliente dueño pero sin rol supplier: deniega por rol (el primero que falla).
	err = authz.Check(caller(ownerUserID, authz.RoleCustomer), req)
	assert.Equal(t, authz.AxisRole, axisOf(t, err))
}

func TestCheck_EsPuro_MismaEntradaMismoResultado(t *testing.T) {
	c := caller(otherUserID, authz.RoleCustomer)
	req := authz.Requirement{
		Roles:   []authz.Role{authz.RoleAdmin},
		OwnerID: ownerUserID,
	}

	err1 := authz.Check(c, req)
	err2 := authz.Check(c, req)

	require.Error(t, err1)
	require.Error(t, err2)
	assert.Equal(t, err1.Error(), err2.Error(),
		"misma entrada debe producir siempre la misma denegación")
}

// ──────────────────────────────────────────────────────────────────────────────
// CheckOwnership: el cuádruple de propiedad
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckOwnership_Dueno(t *testing.T) {
	own := authz.CheckOwnership(caller(ownerUserID, authz.RoleSupplier), ownerUserID)

	assert.True(t, own.IsOwner)
	assert.True(t, own.IsSupplier)
	assert.False(t, own.IsAdmin)
	assert.True(t, own.CanEdit)
	assert.True(t, own.CanDelete)
}

func TestCheckOwnership_AdminNoDueno(t *testing.T) {
	own := authz.CheckOwnership(caller(otherUserID, authz.RoleAdmin), ownerUserID)

	assert.False(t, own.IsOwner)
	assert.True(t, own.IsAdmin)
	assert.True(t, own.CanEdit, "admin puede editar sin ser dueño")
	assert.True(t, own.CanDelete)
}

func TestCheckOwnership_TerceroSinRelacion(t *testing.T) {
	own := authz.CheckOwnership(caller(otherUserID, authz.RoleCustomer), ownerUserID)

	assert.False(t, own.IsOwner)
	assert.False(t, own.IsSupplier)
	assert.False(t, own.IsAdmin)
	assert.False(t, own.CanEdit)
	assert.False(t, own.CanDelete)
}

func TestCheckOwnership_CallerAnonimo_NuncaDueno(t *testing.T) {
	// UserID vacío jamás coincide con un owner, ni siquiera con owner vacío.
	own := authz.CheckOwnership(caller(""), "")
	assert.False(t, own.IsOwner)
	assert.False(t, own.CanEdit)
}

package authz

import (
	"fmt"
	"strings"
)

// Axis identifica cuál de los tres ejes del guard rechazó la operación.
type Axis string

const (
	AxisRole      Axis = "role"
	AxisPerm      Axis = "permission"
	AxisOwnership Axis = "ownership"
)

// DeniedError describe una denegación de autorización con el eje que falló.
// Nunca se degrada a acceso parcial: el caller recibe la denegación completa.
type DeniedError struct {
	Axis    Axis
	Missing string // rol/permiso faltante u owner esperado, para diagnóstico
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("acceso denegado (eje %s): %s", e.Axis, e.Missing)
}

// Caller es la identidad autenticada que solicita una operación.
// Permissions se deriva de Roles vía PermissionsByRoles, no se persiste.
type Caller struct {
	UserID      string
	Roles       []Role
	Permissions map[Permission]bool
}

// NewCaller construye el caller derivando sus permisos del registro.
func NewCaller(userID string, roles []Role) Caller {
	return Caller{
		UserID:      userID,
		Roles:       roles,
		Permissions: PermissionsByRoles(roles),
	}
}

// CallerFromStrings construye el caller desde roles en string (claims JWT).
func CallerFromStrings(userID string, roles []string) Caller {
	rs := make([]Role, 0, len(roles))
	for _, r := range roles {
		rs = append(rs, Role(r))
	}
	return NewCaller(userID, rs)
}

// IsAdmin reporta si el caller tiene algún rol de nivel administrativo.
func (c Caller) IsAdmin() bool {
	for _, r := range c.Roles {
		if IsAdminTier(r) {
			return true
		}
	}
	return false
}

// HasRole reporta si el caller tiene el rol.
func (c Caller) HasRole(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Requirement declara los tres ejes de una operación. Un eje vacío se
// satisface trivialmente.
type Requirement struct {
	Roles       []Role       // basta con uno (OR)
	Permissions []Permission // se exigen todos (AND)
	OwnerID     string       // si no está vacío, caller.UserID debe coincidir o el caller ser admin
}

// Check evalúa los tres ejes en AND: rol, permiso y propiedad. Es una función
// pura: mismas entradas producen siempre el mismo resultado y la misma razón.
// Devuelve nil en ALLOW o *DeniedError con el eje que falló en DENY.
func Check(caller Caller, req Requirement) error {
	if len(req.Roles) > 0 {
		ok := false
		for _, r := range req.Roles {
			if caller.HasRole(r) {
				ok = true
				break
			}
		}
		if !ok {
			return &DeniedError{Axis: AxisRole, Missing: joinRoles(req.Roles)}
		}
	}
	for _, p := range req.Permissions {
		if !caller.Permissions[p] {
			return &DeniedError{Axis: AxisPerm, Missing: string(p)}
		}
	}
	if req.OwnerID != "" {
		if caller.UserID != req.OwnerID && !caller.IsAdmin() {
			return &DeniedError{Axis: AxisOwnership, Missing: req.OwnerID}
		}
	}
	return nil
}

// Ownership responde el cuádruple de propiedad para un recurso concreto.
type Ownership struct {
	IsOwner    bool `json:"is_owner"`
	IsSupplier bool `json:"is_supplier"`
	IsAdmin    bool `json:"is_admin"`
	CanEdit    bool `json:"can_edit"`
	CanDelete  bool `json:"can_delete"`
}

// CheckOwnership deriva, sin efectos secundarios, la relación del caller con
// un recurso cuyo dueño es ownerID. Edit y delete siguen la misma política
// (dueño o admin); el endpoint añade sus propios ejes de rol/permiso.
func CheckOwnership(caller Caller, ownerID string) Ownership {
	isOwner := caller.UserID != "" && caller.UserID == ownerID
	isAdmin := caller.IsAdmin()
	return Ownership{
		IsOwner:    isOwner,
		IsSupplier: caller.HasRole(RoleSupplier),
		IsAdmin:    isAdmin,
		CanEdit:    isOwner || isAdmin,
		CanDelete:  isOwner || isAdmin,
	}
}

func joinRoles(roles []Role) string {
	ss := make([]string, len(roles))
	for i, r := range roles {
		ss[i] = string(r)
	}
	return strings.Join(ss, "|")
}

package entity

import "time"

// User representa una cuenta del marketplace. Los roles viven en Roles
// (un usuario puede ser cliente y proveedor a la vez); los permisos se
// derivan del registro estático en authz, nunca se persisten.
type User struct {
	ID            string
	Email         string
	PasswordHash  string // bcrypt hash; vacío para cuentas creadas vía OAuth
	Name          string
	Roles         []string // valores de authz.Role
	RegComplete   bool     // el registro quedó completo (roles asignados)
	EmailVerified bool
	GoogleID      string // id externo cuando la cuenta entró por OAuth
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/marketplace-api/internal/domain/authz"
)

// RequireRoles devuelve un middleware que autoriza si el caller tiene alguno
// de los roles indicados. Debe usarse DESPUÉS de AuthMiddleware (necesita los
// Locals de identidad). Los casos de uso repiten sus propios chequeos: este
// middleware corta temprano, no sustituye al guard.
func RequireRoles(roles ...authz.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authz.Check(GetCaller(c), authz.Requirement{Roles: roles}); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

// RequirePermissions devuelve un middleware que exige todos los permisos
// indicados. Debe usarse DESPUÉS de AuthMiddleware.
func RequirePermissions(perms ...authz.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authz.Check(GetCaller(c), authz.Requirement{Permissions: perms}); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/marketplace-api/internal/domain/authz"
	apihttp "github.com/tu-usuario/marketplace-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildGuardedApp construye una app mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - el middleware de guard bajo prueba
//   - un handler dummy que devuelve 200 si pasa los middlewares
func buildGuardedApp(guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guardada",
		apihttp.AuthMiddleware(testSecret),
		guard,
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func doGuarded(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/guardada", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRoles
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el usuario tiene el rol requerido → HTTP 200.
func TestRequireRoles_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildGuardedApp(apihttp.RequireRoles(authz.RoleAdmin))
	resp := doGuarded(t, app, validToken(t, "user-1", "admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")
}

// Caso 1b: el usuario tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRoles_ModeratorAccedeRutaAdminOModerator(t *testing.T) {
	app := buildGuardedApp(apihttp.RequireRoles(authz.RoleAdmin, authz.RoleModerator))
	resp := doGuarded(t, app, validToken(t, "user-1", "moderator"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"moderator debe poder acceder a ruta que permite admin o moderator")
}

// Caso 2: rol distinto al requerido → HTTP 403 con el eje que falló.
func TestRequireRoles_CustomerBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildGuardedApp(apihttp.RequireRoles(authz.RoleAdmin))
	resp := doGuarded(t, app, validToken(t, "user-1", "customer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"customer no debe poder acceder a ruta restringida a admin")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN_role",
		"la respuesta debe nombrar el eje de rol")
}

// Caso 3: token sin roles → HTTP 403.
func TestRequireRoles_TokenSinRoles_Retorna403(t *testing.T) {
	app := buildGuardedApp(apihttp.RequireRoles(authz.RoleSupplier))
	resp := doGuarded(t, app, validToken(t, "user-1"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 4: sin token el AuthMiddleware corta antes → HTTP 401.
func TestRequireRoles_SinToken_Retorna401(t *testing.T) {
	app := buildGuardedApp(apihttp.RequireRoles(authz.RoleAdmin))
	req := httptest.NewRequest(http.MethodGet, "/guardada", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermissions
// ──────────────────────────────────────────────────────────────────────────────

// Todos los permisos presentes → HTTP 200.
func TestRequirePermissions_SupplierConPermisosDeProducto(t *testing.T) {
	app := buildGuardedApp(apihttp.RequirePermissions(
		authz.PermProductCreate, authz.PermProductUpdate,
	))
	resp := doGuarded(t, app, validToken(t, "user-1", "supplier"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Falta uno de los permisos exigidos → HTTP 403 con el permiso faltante.
func TestRequirePermissions_FaltaUnPermiso_Retorna403(t *testing.T) {
	app := buildGuardedApp(apihttp.RequirePermissions(
		authz.PermProductUpdate, authz.PermSupplierApprove,
	))
	resp := doGuarded(t, app, validToken(t, "user-1", "supplier"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"supplier no tiene supplier:approve")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN_permission")
	assert.Contains(t, string(body), string(authz.PermSupplierApprove))
}

package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/marketplace-api/internal/domain/authz"
	apihttp "github.com/tu-usuario/marketplace-api/internal/interfaces/http"
	"github.com/tu-usuario/marketplace-api/pkg/jwt"
)

const testSecret = "secreto-de-test-no-usar-en-produccion"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newProtectedApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protegida", apihttp.AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		caller := apihttp.GetCaller(c)
		return c.JSON(fiber.Map{
			"user_id":  apihttp.GetUserID(c),
			"is_admin": caller.IsAdmin(),
		})
	})
	return app
}

func validToken(t *testing.T, userID string, roles ...string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, jwt.Identity{
		UserID: userID,
		Email:  "test@example.com",
		Roles:  roles,
	}, "marketplace-api", 15)
	require.NoError(t, err, "generar el token de prueba no debe fallar")
	return token
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Rechazos: sin token, formato inválido, firma incorrecta
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_401(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_FormatoInvalido_401(t *testing.T) {
	app := newProtectedApp(t)

	for _, header := range []string{"Basic abc123", "solo-un-token"} {
		req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		assert.Equalf(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q debe rechazarse", header)
		body := decodeBody(t, resp)
		assert.Equal(t, "INVALID_TOKEN", body["code"])
	}
}

func TestAuthMiddleware_BearerVacio_401(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer ")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_FirmaIncorrecta_401(t *testing.T) {
	app := newProtectedApp(t)

	otro, err := jwt.Generate("otro-secreto", jwt.Identity{UserID: "user-1"}, "marketplace-api", 15)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+otro)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Token válido: identidad disponible para los handlers
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValido_ExtraeIdentidad(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t, "user-42", "customer"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "user-42", body["user_id"])
	assert.Equal(t, false, body["is_admin"])
}

func TestAuthMiddleware_RolesEnElCaller(t *testing.T) {
	app := fiber.New()
	app.Get("/quien-soy", apihttp.AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		caller := apihttp.GetCaller(c)
		return c.JSON(fiber.Map{
			"has_supplier": caller.HasRole(authz.RoleSupplier),
			"is_admin":     caller.IsAdmin(),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/quien-soy", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t, "user-7", "supplier", "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["has_supplier"])
	assert.Equal(t, true, body["is_admin"], "multi-rol: admin entre varios roles basta")
}

func TestGetCaller_SinMiddleware_CallerGuest(t *testing.T) {
	// En rutas públicas GetCaller produce un caller vacío: sin id ni permisos.
	app := fiber.New()
	app.Get("/publica", func(c *fiber.Ctx) error {
		caller := apihttp.GetCaller(c)
		return c.JSON(fiber.Map{
			"user_id":  caller.UserID,
			"is_admin": caller.IsAdmin(),
			"n_perms":  len(caller.Permissions),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/publica", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "", body["user_id"])
	assert.Equal(t, false, body["is_admin"])
	assert.EqualValues(t, 0, body["n_perms"])
}

package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/marketplace-api/pkg/jwt"
)

const secret = "secreto-de-test"

func TestGenerateParse_RoundTrip(t *testing.T) {
	in := jwt.Identity{
		UserID:        "user-1",
		Email:         "ana@example.com",
		Roles:         []string{"customer", "supplier"},
		RegComplete:   true,
		EmailVerified: true,
	}

	token, err := jwt.Generate(secret, in, "marketplace-api", 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	out, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, in.UserID, out.UserID)
	assert.Equal(t, in.Email, out.Email)
	assert.Equal(t, in.Roles, out.Roles)
	assert.True(t, out.RegComplete)
	assert.True(t, out.EmailVerified)
}

func TestParse_TokenExpirado(t *testing.T) {
	// Expiración negativa: el token nace vencido.
	token, err := jwt.Generate(secret, jwt.Identity{UserID: "user-1"}, "marketplace-api", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err, "un token vencido debe rechazarse")
}

func TestParse_SecretoIncorrecto(t *testing.T) {
	token, err := jwt.Generate(secret, jwt.Identity{UserID: "user-1"}, "marketplace-api", 15)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenBasura(t *testing.T) {
	_, err := jwt.Parse(secret, "no.es.jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretoVacio(t *testing.T) {
	_, err := jwt.Generate("", jwt.Identity{UserID: "user-1"}, "marketplace-api", 15)
	assert.Error(t, err)

	_, err = jwt.Parse("", "lo-que-sea")
	assert.Error(t, err)
}

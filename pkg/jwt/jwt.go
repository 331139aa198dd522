package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añaden Roles y los flags de registro para que el middleware de autorización
// pueda tomar decisiones sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID        string   `json:"user_id"`
	Email         string   `json:"email"`
	Roles         []string `json:"roles"` // "admin", "supplier", "customer", ...
	RegComplete   bool     `json:"reg_complete"`
	EmailVerified bool     `json:"email_verified"`
}

// Identity es el resultado de parsear un token válido.
type Identity struct {
	UserID        string
	Email         string
	Roles         []string
	RegComplete   bool
	EmailVerified bool
}

// Generate genera un token JWT firmado con la identidad del usuario.
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:        id.UserID,
		Email:         id.Email,
		Roles:         id.Roles,
		RegComplete:   id.RegComplete,
		EmailVerified: id.EmailVerified,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad del portador.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Identity, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Identity{
		UserID:        claims.UserID,
		Email:         claims.Email,
		Roles:         claims.Roles,
		RegComplete:   claims.RegComplete,
		EmailVerified: claims.EmailVerified,
	}, nil
}

package dto

import "time"

// RegisterRequest entrada para registrar una cuenta (cliente o proveedor).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	// Role solicitado: "customer" (defecto) o "supplier". Roles administrativos
	// nunca se asignan por este endpoint.
	Role string `json:"role"`
}

// LoginRequest entrada de login con email/password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OAuthLoginRequest entrada de login federado: code de autorización o id_token directo.
type OAuthLoginRequest struct {
	Code    string `json:"code"`
	IDToken string `json:"id_token"`
}

// CompleteSupplierRequest entrada para completar el registro de proveedor.
// Crea el perfil Supplier en pending.
type CompleteSupplierRequest struct {
	CompanyName        string `json:"company_name" validate:"required,min=2,max=200"`
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Address            string `json:"address"`
}

// UserResponse salida de una cuenta.
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Roles         []string  `json:"roles"`
	RegComplete   bool      `json:"reg_complete"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoginResponse salida de login: token + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

package dto

import "time"

// RegisterRequest datos para registrar un usuario bajo un tenant existente.
type RegisterRequest struct {
	TenantID string `json:"tenant_id" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
	Role     string `json:"role"` // owner, admin, bodeguero, vendedor (default vendedor)
	// StoreID opcional: tienda por defecto del usuario (requerida para roles por tienda).
	StoreID string `json:"store_id"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SelectStoreRequest cambio de tienda activa: emite una credencial nueva con el claim de tienda.
type SelectStoreRequest struct {
	StoreID string `json:"store_id" validate:"required"`
}

// UserResponse usuario sin campos sensibles.
type UserResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// TokenResponse credencial re-emitida (selección de tienda).
type TokenResponse struct {
	Token string `json:"token"`
}

package entity

import "time"

// Roles válidos para User.
// owner y admin tienen alcance de tenant completo: no requieren asignación de
// tienda y están autorizados para cualquier tienda del tenant.
const (
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// IsTenantWideRole indica si el rol ignora el alcance por tienda.
// Predicado único de autorización (en vez de checks dispersos por rol).
func IsTenantWideRole(role string) bool {
	return role == RoleOwner || role == RoleAdmin
}

// User representa un usuario del sistema (pertenece a un Tenant).
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // owner, admin, bodeguero, vendedor
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StoreAssignment es la tienda por defecto de un actor, usada como fallback
// cuando la credencial no trae claim de tienda. Los roles de tenant completo
// no llevan asignación: se les resuelve la tienda principal.
type StoreAssignment struct {
	ActorID   string
	StoreID   string
	CreatedAt time.Time
}

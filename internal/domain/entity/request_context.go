package entity

// RequestContext es el contexto resuelto de una petición: (tenant, tienda, actor).
// Valor efímero construido una sola vez por el resolver y pasado explícitamente
// a las operaciones; nunca se persiste ni se vuelve a resolver a mitad de petición.
// StoreID puede ser vacío solo en operaciones exentas (auth, signup, health).
type RequestContext struct {
	TenantID string
	StoreID  string
	ActorID  string
	Role     string
}

// TenantWide indica si el actor está autorizado para cualquier tienda del tenant.
func (c RequestContext) TenantWide() bool {
	return IsTenantWideRole(c.Role)
}

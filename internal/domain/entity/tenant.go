package entity

import "time"

// Políticas de tiendas por tenant (deben coincidir con el CHECK de la tabla tenants).
const (
	PolicySingleStore = "SINGLE_STORE"
	PolicyMultiStore  = "MULTI_STORE"
)

// Tenant representa una organización cliente del sistema (raíz de propiedad, multi-tenant).
// Invariante: exactamente una tienda del tenant tiene IsMain = true, creada
// atómicamente con el tenant y nunca eliminable mientras el tenant exista.
type Tenant struct {
	ID          string
	Name        string
	StorePolicy string // SINGLE_STORE | MULTI_STORE
	Status      string // active, suspended, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AllowsSubStores indica si la política permite crear tiendas adicionales.
func (t *Tenant) AllowsSubStores() bool {
	return t.StorePolicy == PolicyMultiStore
}

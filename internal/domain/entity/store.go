package entity

import "time"

// Store representa una tienda/punto de venta bajo un tenant.
// La tienda principal (IsMain) se crea junto con el tenant; las subtiendas solo
// existen si la política del tenant es MULTI_STORE. Nunca se elimina físicamente
// mientras existan asignaciones: se desactiva (IsActive = false).
type Store struct {
	ID        string
	TenantID  string
	Name      string
	NameKey   string // clave de unicidad: nombre normalizado (NFC + casefold), único por tenant
	IsMain    bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

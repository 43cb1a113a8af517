package entity

import "time"

// InventoryItem representa un producto vendible. Pertenece siempre a la tienda
// principal del tenant: las operaciones por tienda nunca cambian su propiedad.
type InventoryItem struct {
	ID        string
	TenantID  string
	SKU       string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

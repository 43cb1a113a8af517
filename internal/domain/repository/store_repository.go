package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	Update(store *entity.Store) error
	// GetMainByTenant devuelve la tienda principal del tenant, o nil si no existe.
	GetMainByTenant(tenantID string) (*entity.Store, error)
	// GetByNameKey busca por la clave de nombre normalizada (unicidad case-insensitive por tenant).
	GetByNameKey(tenantID, nameKey string) (*entity.Store, error)
	// ListByTenant lista las tiendas del tenant en orden de creación, principal primero.
	ListByTenant(tenantID string) ([]*entity.Store, error)
}

package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ItemRepository define el puerto de persistencia para InventoryItem (DIP).
type ItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.InventoryItem, error)
}

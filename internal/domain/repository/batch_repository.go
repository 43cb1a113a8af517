package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// BatchRepository define el puerto para lotes de inventario.
// GetForUpdate se usa dentro de transacciones: el bloqueo de la fila del lote
// serializa todas las mutaciones del ledger sobre el mismo lote.
type BatchRepository interface {
	Create(batch *entity.InventoryBatch) error
	GetByID(id string) (*entity.InventoryBatch, error)
	Update(batch *entity.InventoryBatch) error
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.InventoryBatch, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.InventoryBatch, error)
}

package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// AllocationRepository define el puerto para las filas de asignación (lote, tienda).
// Usado dentro de transacciones junto al bloqueo del lote para garantizar el invariante
// Σ remaining por lote ≤ remaining del lote.
type AllocationRepository interface {
	Get(batchID, storeID string) (*entity.Allocation, error)
	// Upsert inserta o actualiza la fila (batch_id, store_id); nunca crea duplicados.
	Upsert(alloc *entity.Allocation) error
	// SumRemainingByBatch devuelve Σ remaining_quantity de todas las tiendas para el lote.
	SumRemainingByBatch(batchID string) (decimal.Decimal, error)
	ListByStore(storeID string) ([]*entity.Allocation, error)
	ListByBatch(batchID string) ([]*entity.Allocation, error)
}

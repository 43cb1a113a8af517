package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación de AllocationRepository sobre PostgreSQL.
// Una fila por (batch_id, store_id): el upsert con ON CONFLICT garantiza que
// re-asignar al mismo par incrementa la fila existente en vez de duplicarla.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

// Get obtiene la asignación del par (lote, tienda), o nil si no existe.
func (r *AllocationRepo) Get(batchID, storeID string) (*entity.Allocation, error) {
	query := `
		SELECT batch_id, store_id, allocated_quantity, remaining_quantity, created_at, updated_at
		FROM batch_allocations WHERE batch_id = $1 AND store_id = $2`
	var a entity.Allocation
	err := r.q.QueryRow(context.Background(), query, batchID, storeID).Scan(
		&a.BatchID, &a.StoreID, &a.AllocatedQuantity, &a.RemainingQuantity, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allocation: %w", err)
	}
	return &a, nil
}

// Upsert inserta o reemplaza la fila (batch_id, store_id) con las cantidades dadas.
// El caso de uso calcula las cantidades finales bajo el bloqueo del lote, así que
// aquí se escriben tal cual (no se suman en SQL).
func (r *AllocationRepo) Upsert(alloc *entity.Allocation) error {
	query := `
		INSERT INTO batch_allocations (batch_id, store_id, allocated_quantity, remaining_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		ON CONFLICT (batch_id, store_id)
		DO UPDATE SET allocated_quantity = EXCLUDED.allocated_quantity,
		              remaining_quantity = EXCLUDED.remaining_quantity,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		alloc.BatchID, alloc.StoreID, alloc.AllocatedQuantity, alloc.RemainingQuantity,
	)
	if err != nil {
		return fmt.Errorf("upsert allocation: %w", err)
	}
	return nil
}

// SumRemainingByBatch devuelve Σ remaining_quantity de todas las tiendas para el lote.
func (r *AllocationRepo) SumRemainingByBatch(batchID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(remaining_quantity), 0)
		FROM batch_allocations WHERE batch_id = $1`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, batchID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum allocations: %w", err)
	}
	return sum, nil
}

// ListByStore lista las asignaciones de una tienda, las más recientes primero.
func (r *AllocationRepo) ListByStore(storeID string) ([]*entity.Allocation, error) {
	query := `
		SELECT batch_id, store_id, allocated_quantity, remaining_quantity, created_at, updated_at
		FROM batch_allocations WHERE store_id = $1
		ORDER BY updated_at DESC`
	return r.list(query, storeID)
}

// ListByBatch lista las asignaciones de un lote.
func (r *AllocationRepo) ListByBatch(batchID string) ([]*entity.Allocation, error) {
	query := `
		SELECT batch_id, store_id, allocated_quantity, remaining_quantity, created_at, updated_at
		FROM batch_allocations WHERE batch_id = $1
		ORDER BY updated_at DESC`
	return r.list(query, batchID)
}

func (r *AllocationRepo) list(query string, arg any) ([]*entity.Allocation, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Allocation
	for rows.Next() {
		var a entity.Allocation
		if err := rows.Scan(&a.BatchID, &a.StoreID, &a.AllocatedQuantity, &a.RemainingQuantity, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

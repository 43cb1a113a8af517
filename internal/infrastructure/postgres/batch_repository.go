package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create inserta un lote.
func (r *BatchRepo) Create(batch *entity.InventoryBatch) error {
	query := `
		INSERT INTO inventory_batches
			(id, tenant_id, item_id, initial_quantity, remaining_quantity, received_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.TenantID, batch.ItemID,
		batch.InitialQuantity, batch.RemainingQuantity,
		batch.ReceivedAt, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por su ID, o nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.InventoryBatch, error) {
	query := `
		SELECT id, tenant_id, item_id, initial_quantity, remaining_quantity, received_at, created_at, updated_at
		FROM inventory_batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el lote y bloquea su fila (SELECT FOR UPDATE).
// Todas las mutaciones del ledger sobre el mismo lote se serializan aquí.
func (r *BatchRepo) GetForUpdate(id string) (*entity.InventoryBatch, error) {
	query := `
		SELECT id, tenant_id, item_id, initial_quantity, remaining_quantity, received_at, created_at, updated_at
		FROM inventory_batches WHERE id = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza la cantidad restante del lote.
func (r *BatchRepo) Update(batch *entity.InventoryBatch) error {
	query := `
		UPDATE inventory_batches SET remaining_quantity = $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, batch.ID, batch.RemainingQuantity)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByItem lista los lotes de un producto, los recibidos primero.
func (r *BatchRepo) ListByItem(itemID string, limit, offset int) ([]*entity.InventoryBatch, error) {
	query := `
		SELECT id, tenant_id, item_id, initial_quantity, remaining_quantity, received_at, created_at, updated_at
		FROM inventory_batches WHERE item_id = $1
		ORDER BY received_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryBatch
	for rows.Next() {
		var b entity.InventoryBatch
		if err := rows.Scan(&b.ID, &b.TenantID, &b.ItemID, &b.InitialQuantity, &b.RemainingQuantity, &b.ReceivedAt, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (r *BatchRepo) scanOne(row pgx.Row) (*entity.InventoryBatch, error) {
	var b entity.InventoryBatch
	err := row.Scan(&b.ID, &b.TenantID, &b.ItemID, &b.InitialQuantity, &b.RemainingQuantity, &b.ReceivedAt, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

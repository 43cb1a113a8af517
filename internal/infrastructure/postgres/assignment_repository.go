package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo implementación de AssignmentRepository sobre PostgreSQL.
// Una fila por actor: la PK sobre actor_id hace que el upsert reemplace la asignación.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// Upsert crea o reemplaza la asignación del actor.
func (r *AssignmentRepo) Upsert(assignment *entity.StoreAssignment) error {
	query := `
		INSERT INTO store_assignments (actor_id, store_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (actor_id)
		DO UPDATE SET store_id = EXCLUDED.store_id, created_at = now()`
	_, err := r.q.Exec(context.Background(), query, assignment.ActorID, assignment.StoreID)
	if err != nil {
		return fmt.Errorf("upsert assignment: %w", err)
	}
	return nil
}

// ResolveDefault devuelve la tienda por defecto del actor bajo el tenant dado,
// o nil si no hay asignación, la tienda asignada pertenece a otro tenant o
// fue desactivada.
func (r *AssignmentRepo) ResolveDefault(actorID, tenantID string) (*entity.Store, error) {
	query := `
		SELECT s.id, s.tenant_id, s.name, s.name_key, s.is_main, s.is_active, s.created_at, s.updated_at
		FROM store_assignments a
		JOIN stores s ON s.id = a.store_id
		WHERE a.actor_id = $1 AND s.tenant_id = $2 AND s.is_active`
	var s entity.Store
	err := r.q.QueryRow(context.Background(), query, actorID, tenantID).Scan(
		&s.ID, &s.TenantID, &s.Name, &s.NameKey, &s.IsMain, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve default store: %w", err)
	}
	return &s, nil
}

// Delete elimina la asignación del actor (idempotente).
func (r *AssignmentRepo) Delete(actorID string) error {
	query := `DELETE FROM store_assignments WHERE actor_id = $1`
	_, err := r.q.Exec(context.Background(), query, actorID)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

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

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository sobre PostgreSQL.
// La BD respalda los invariantes del directorio con dos índices únicos parciales:
// uno sobre (tenant_id) WHERE is_main y otro sobre (tenant_id, name_key).
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create inserta una tienda. Los índices únicos traducen la carrera de
// duplicados concurrentes a los errores de dominio correspondientes.
func (r *StoreRepo) Create(store *entity.Store) error {
	query := `
		INSERT INTO stores (id, tenant_id, name, name_key, is_main, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		store.ID, store.TenantID, store.Name, store.NameKey,
		store.IsMain, store.IsActive, store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if store.IsMain {
				return domain.ErrDuplicateMainStore
			}
			return domain.ErrDuplicateStoreName
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por su ID, o nil si no existe.
func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	query := `
		SELECT id, tenant_id, name, name_key, is_main, is_active, created_at, updated_at
		FROM stores WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza nombre y estado de la tienda.
func (r *StoreRepo) Update(store *entity.Store) error {
	query := `
		UPDATE stores SET name = $2, name_key = $3, is_active = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		store.ID, store.Name, store.NameKey, store.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateStoreName
		}
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetMainByTenant devuelve la tienda principal del tenant, o nil si no existe.
func (r *StoreRepo) GetMainByTenant(tenantID string) (*entity.Store, error) {
	query := `
		SELECT id, tenant_id, name, name_key, is_main, is_active, created_at, updated_at
		FROM stores WHERE tenant_id = $1 AND is_main`
	return r.scanOne(r.q.QueryRow(context.Background(), query, tenantID))
}

// GetByNameKey busca por la clave de nombre normalizada (unicidad case-insensitive por tenant).
func (r *StoreRepo) GetByNameKey(tenantID, nameKey string) (*entity.Store, error) {
	query := `
		SELECT id, tenant_id, name, name_key, is_main, is_active, created_at, updated_at
		FROM stores WHERE tenant_id = $1 AND name_key = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, tenantID, nameKey))
}

// ListByTenant lista las tiendas del tenant en orden de creación, principal primero.
func (r *StoreRepo) ListByTenant(tenantID string) ([]*entity.Store, error) {
	query := `
		SELECT id, tenant_id, name, name_key, is_main, is_active, created_at, updated_at
		FROM stores WHERE tenant_id = $1
		ORDER BY is_main DESC, created_at`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.NameKey, &s.IsMain, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *StoreRepo) scanOne(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.TenantID, &s.Name, &s.NameKey, &s.IsMain, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

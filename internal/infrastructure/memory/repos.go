package memory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ repository.TenantRepository     = (*TenantRepo)(nil)
	_ repository.StoreRepository      = (*StoreRepo)(nil)
	_ repository.ItemRepository       = (*ItemRepo)(nil)
	_ repository.BatchRepository      = (*BatchRepo)(nil)
	_ repository.AllocationRepository = (*AllocationRepo)(nil)
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.AssignmentRepository = (*AssignmentRepo)(nil)
)

// TenantRepo repositorio de tenants en memoria.
type TenantRepo struct{ db *DB }

func (r *TenantRepo) Create(t *entity.Tenant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.tenants[t.ID]; ok {
		return domain.ErrDuplicate
	}
	r.db.tenants[t.ID] = *t
	return nil
}

func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	t, ok := r.db.tenants[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *TenantRepo) Update(t *entity.Tenant) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.tenants[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.tenants[t.ID] = *t
	return nil
}

func (r *TenantRepo) List(limit, offset int) ([]*entity.Tenant, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.Tenant
	for id := range r.db.tenants {
		t := r.db.tenants[id]
		list = append(list, &t)
	}
	return page(list, limit, offset), nil
}

// StoreRepo repositorio de tiendas en memoria.
type StoreRepo struct{ db *DB }

func (r *StoreRepo) Create(s *entity.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.stores[s.ID]; ok {
		return domain.ErrDuplicate
	}
	r.db.stores[s.ID] = *s
	return nil
}

func (r *StoreRepo) GetByID(id string) (*entity.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.stores[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *StoreRepo) Update(s *entity.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.stores[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.stores[s.ID] = *s
	return nil
}

func (r *StoreRepo) GetMainByTenant(tenantID string) (*entity.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for id := range r.db.stores {
		s := r.db.stores[id]
		if s.TenantID == tenantID && s.IsMain {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *StoreRepo) GetByNameKey(tenantID, nameKey string) (*entity.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for id := range r.db.stores {
		s := r.db.stores[id]
		if s.TenantID == tenantID && s.NameKey == nameKey {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *StoreRepo) ListByTenant(tenantID string) ([]*entity.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.storesByTenantLocked(tenantID), nil
}

// ItemRepo repositorio de productos en memoria.
type ItemRepo struct{ db *DB }

func (r *ItemRepo) Create(i *entity.InventoryItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.items[i.ID]; ok {
		return domain.ErrDuplicate
	}
	r.db.items[i.ID] = *i
	return nil
}

func (r *ItemRepo) GetByID(id string) (*entity.InventoryItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	i, ok := r.db.items[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

func (r *ItemRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.InventoryItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.InventoryItem
	for id := range r.db.items {
		i := r.db.items[id]
		if i.TenantID == tenantID {
			cp := i
			list = append(list, &cp)
		}
	}
	return page(list, limit, offset), nil
}

// BatchRepo repositorio de lotes en memoria.
type BatchRepo struct{ db *DB }

func (r *BatchRepo) Create(b *entity.InventoryBatch) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.batches[b.ID]; ok {
		return domain.ErrDuplicate
	}
	r.db.batches[b.ID] = *b
	return nil
}

func (r *BatchRepo) GetByID(id string) (*entity.InventoryBatch, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	b, ok := r.db.batches[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *BatchRepo) Update(b *entity.InventoryBatch) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.batches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.batches[b.ID] = *b
	return nil
}

// GetForUpdate en memoria equivale a GetByID: el TxRunner serializa las
// transacciones completas, así que no hay carrera que bloquear por fila.
func (r *BatchRepo) GetForUpdate(id string) (*entity.InventoryBatch, error) {
	return r.GetByID(id)
}

func (r *BatchRepo) ListByItem(itemID string, limit, offset int) ([]*entity.InventoryBatch, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.InventoryBatch
	for id := range r.db.batches {
		b := r.db.batches[id]
		if b.ItemID == itemID {
			cp := b
			list = append(list, &cp)
		}
	}
	return page(list, limit, offset), nil
}

// AllocationRepo repositorio de asignaciones en memoria.
type AllocationRepo struct{ db *DB }

func (r *AllocationRepo) Get(batchID, storeID string) (*entity.Allocation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	a, ok := r.db.allocations[allocKey{BatchID: batchID, StoreID: storeID}]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AllocationRepo) Upsert(a *entity.Allocation) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.allocations[allocKey{BatchID: a.BatchID, StoreID: a.StoreID}] = *a
	return nil
}

func (r *AllocationRepo) SumRemainingByBatch(batchID string) (decimal.Decimal, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	sum := decimal.Zero
	for k := range r.db.allocations {
		if k.BatchID == batchID {
			sum = sum.Add(r.db.allocations[k].RemainingQuantity)
		}
	}
	return sum, nil
}

func (r *AllocationRepo) ListByStore(storeID string) ([]*entity.Allocation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.Allocation
	for k := range r.db.allocations {
		if k.StoreID == storeID {
			a := r.db.allocations[k]
			list = append(list, &a)
		}
	}
	return list, nil
}

func (r *AllocationRepo) ListByBatch(batchID string) ([]*entity.Allocation, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.Allocation
	for k := range r.db.allocations {
		if k.BatchID == batchID {
			a := r.db.allocations[k]
			list = append(list, &a)
		}
	}
	return list, nil
}

// UserRepo repositorio de usuarios en memoria.
type UserRepo struct{ db *DB }

func (r *UserRepo) Create(u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[u.ID]; ok {
		return domain.ErrDuplicate
	}
	r.db.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmailAndTenant(email, tenantID string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for id := range r.db.users {
		u := r.db.users[id]
		if u.Email == email && u.TenantID == tenantID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for id := range r.db.users {
		u := r.db.users[id]
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(u *entity.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.users[u.ID] = *u
	return nil
}

func (r *UserRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var list []*entity.User
	for id := range r.db.users {
		u := r.db.users[id]
		if u.TenantID == tenantID {
			cp := u
			list = append(list, &cp)
		}
	}
	return page(list, limit, offset), nil
}

// AssignmentRepo repositorio de asignaciones actor→tienda en memoria.
type AssignmentRepo struct{ db *DB }

func (r *AssignmentRepo) Upsert(a *entity.StoreAssignment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.assignments[a.ActorID] = *a
	return nil
}

func (r *AssignmentRepo) ResolveDefault(actorID, tenantID string) (*entity.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	a, ok := r.db.assignments[actorID]
	if !ok {
		return nil, nil
	}
	s, ok := r.db.stores[a.StoreID]
	if !ok || s.TenantID != tenantID || !s.IsActive {
		return nil, nil
	}
	return &s, nil
}

func (r *AssignmentRepo) Delete(actorID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.assignments, actorID)
	return nil
}

func page[T any](list []*T, limit, offset int) []*T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

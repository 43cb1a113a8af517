package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// DB es la implementación en memoria de todos los puertos de persistencia
// (tests y modo desarrollo). Mapas protegidos por RWMutex; las entidades se
// guardan por valor para que los snapshots del TxRunner no compartan memoria.
type DB struct {
	mu sync.RWMutex

	tenants     map[string]entity.Tenant
	stores      map[string]entity.Store
	items       map[string]entity.InventoryItem
	batches     map[string]entity.InventoryBatch
	allocations map[allocKey]entity.Allocation
	users       map[string]entity.User
	assignments map[string]entity.StoreAssignment // actorID -> asignación
}

type allocKey struct {
	BatchID string
	StoreID string
}

// NewDB construye la base en memoria vacía.
func NewDB() *DB {
	return &DB{
		tenants:     make(map[string]entity.Tenant),
		stores:      make(map[string]entity.Store),
		items:       make(map[string]entity.InventoryItem),
		batches:     make(map[string]entity.InventoryBatch),
		allocations: make(map[allocKey]entity.Allocation),
		users:       make(map[string]entity.User),
		assignments: make(map[string]entity.StoreAssignment),
	}
}

// Accessors de repositorios sobre la misma base.
func (d *DB) Tenants() repository.TenantRepository         { return &TenantRepo{db: d} }
func (d *DB) Stores() repository.StoreRepository           { return &StoreRepo{db: d} }
func (d *DB) Items() repository.ItemRepository             { return &ItemRepo{db: d} }
func (d *DB) Batches() repository.BatchRepository          { return &BatchRepo{db: d} }
func (d *DB) Allocations() repository.AllocationRepository { return &AllocationRepo{db: d} }
func (d *DB) Users() repository.UserRepository             { return &UserRepo{db: d} }
func (d *DB) Assignments() repository.AssignmentRepository { return &AssignmentRepo{db: d} }

// snapshot copia todos los mapas (las entidades van por valor).
type snapshot struct {
	tenants     map[string]entity.Tenant
	stores      map[string]entity.Store
	items       map[string]entity.InventoryItem
	batches     map[string]entity.InventoryBatch
	allocations map[allocKey]entity.Allocation
	users       map[string]entity.User
	assignments map[string]entity.StoreAssignment
}

func (d *DB) takeSnapshot() snapshot {
	return snapshot{
		tenants:     cloneMap(d.tenants),
		stores:      cloneMap(d.stores),
		items:       cloneMap(d.items),
		batches:     cloneMap(d.batches),
		allocations: cloneMap(d.allocations),
		users:       cloneMap(d.users),
		assignments: cloneMap(d.assignments),
	}
}

func (d *DB) restore(s snapshot) {
	d.tenants = s.tenants
	d.stores = s.stores
	d.items = s.items
	d.batches = s.batches
	d.allocations = s.allocations
	d.users = s.users
	d.assignments = s.assignments
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// storesByTenantLocked devuelve las tiendas del tenant en orden de creación,
// la principal primero. Requiere d.mu tomado.
func (d *DB) storesByTenantLocked(tenantID string) []*entity.Store {
	var list []*entity.Store
	for id := range d.stores {
		s := d.stores[id]
		if s.TenantID == tenantID {
			cp := s
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].IsMain != list[j].IsMain {
			return list[i].IsMain
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list
}

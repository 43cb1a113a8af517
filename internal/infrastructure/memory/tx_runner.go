package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/application/directory"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)
var _ directory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks con semántica transaccional sobre la base en memoria:
// serializa las transacciones entre sí (mutex propio) y, ante error o cancelación,
// restaura el snapshot previo — rollback completo, nunca mutación parcial.
// Más grueso que el bloqueo por lote de PostgreSQL, pero con las mismas garantías.
type TxRunner struct {
	db   *DB
	txMu sync.Mutex
}

// NewTxRunner construye el runner sobre la base dada. Usar una sola instancia por DB.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn con los repositorios del ledger dentro de una "transacción".
func (r *TxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	allocRepo repository.AllocationRepository,
) error) error {
	return r.transact(ctx, func() error {
		return fn(r.db.Batches(), r.db.Allocations())
	})
}

// RunDirectory ejecuta fn con los repositorios del directorio (tenant + tienda).
func (r *TxRunner) RunDirectory(ctx context.Context, fn func(
	tenantRepo repository.TenantRepository,
	storeRepo repository.StoreRepository,
) error) error {
	return r.transact(ctx, func() error {
		return fn(r.db.Tenants(), r.db.Stores())
	})
}

func (r *TxRunner) transact(ctx context.Context, fn func() error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	r.db.mu.Lock()
	snap := r.db.takeSnapshot()
	r.db.mu.Unlock()

	err := fn()
	if err == nil {
		err = ctx.Err() // cancelación a mitad de transacción: rollback total
	}
	if err != nil {
		r.db.mu.Lock()
		r.db.restore(snap)
		r.db.mu.Unlock()
		return err
	}
	return nil
}

package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/authz"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LedgerUseCase es el ledger de asignaciones: reparte los lotes del tenant entre
// sus tiendas sin perder ni duplicar unidades. Toda mutación corre en transacción
// con la fila del lote bloqueada (SELECT FOR UPDATE), así el invariante
// Σ remaining por tienda ≤ remaining del lote se verifica y aplica sin carreras.
// El ledger nunca resuelve identidad: solo valida que lote y tienda pertenezcan
// al tenant del contexto recibido.
type LedgerUseCase struct {
	txRunner    TxRunner
	batchRepo   repository.BatchRepository
	allocRepo   repository.AllocationRepository
	storeRepo   repository.StoreRepository
	itemRepo    repository.ItemRepository
	permissions PermissionChecker
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	batchRepo repository.BatchRepository,
	allocRepo repository.AllocationRepository,
	storeRepo repository.StoreRepository,
	itemRepo repository.ItemRepository,
	permissions PermissionChecker,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		batchRepo:   batchRepo,
		allocRepo:   allocRepo,
		storeRepo:   storeRepo,
		itemRepo:    itemRepo,
		permissions: permissions,
	}
}

// requireStoreWrite consulta al colaborador de permisos la capacidad de escritura
// sobre Store. Negativo → ErrPermissionDenied, sin mutación alguna.
func (uc *LedgerUseCase) requireStoreWrite(ctx context.Context, rctx entity.RequestContext) error {
	ok, err := uc.permissions.Allowed(ctx, rctx.Role, authz.ActionWrite, authz.SubjectStore)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPermissionDenied
	}
	return nil
}

// batchForTenant carga el lote y verifica que pertenezca al tenant del contexto.
func (uc *LedgerUseCase) batchForTenant(rctx entity.RequestContext, batchID string) (*entity.InventoryBatch, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.TenantID != rctx.TenantID {
		return nil, domain.ErrCrossTenantAccess
	}
	return batch, nil
}

// storeForTenant carga la tienda y verifica que pertenezca al tenant del contexto.
func (uc *LedgerUseCase) storeForTenant(rctx entity.RequestContext, storeID string) (*entity.Store, error) {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if store.TenantID != rctx.TenantID {
		return nil, domain.ErrCrossTenantAccess
	}
	return store, nil
}

// ReceiveBatch registra un lote nuevo de un producto (evento de recepción).
// El lote nace sin asignaciones: todo su remaining está disponible solo en la principal.
func (uc *LedgerUseCase) ReceiveBatch(ctx context.Context, rctx entity.RequestContext, in dto.ReceiveBatchRequest) (*dto.BatchResponse, error) {
	if err := uc.requireStoreWrite(ctx, rctx); err != nil {
		return nil, err
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.TenantID != rctx.TenantID {
		return nil, domain.ErrCrossTenantAccess
	}
	now := time.Now()
	batch := &entity.InventoryBatch{
		ID:                uuid.New().String(),
		TenantID:          rctx.TenantID,
		ItemID:            in.ItemID,
		InitialQuantity:   in.Quantity,
		RemainingQuantity: in.Quantity,
		ReceivedAt:        now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// Allocate asigna unidades del lote a una tienda. Upsert sobre la fila (lote, tienda):
// re-asignar incrementa allocated y remaining, nunca crea duplicado.
// Falla con ErrInsufficientBatchQuantity si Σ remaining existente + cantidad
// supera el remaining del lote; en ese caso no muta nada.
func (uc *LedgerUseCase) Allocate(ctx context.Context, rctx entity.RequestContext, in dto.AllocateRequest) (*dto.AllocationResponse, error) {
	if err := uc.requireStoreWrite(ctx, rctx); err != nil {
		return nil, err
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	if _, err := uc.batchForTenant(rctx, in.BatchID); err != nil {
		return nil, err
	}
	store, err := uc.storeForTenant(rctx, in.StoreID)
	if err != nil {
		return nil, err
	}
	if !store.IsActive {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Allocation
	err = uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, allocRepo repository.AllocationRepository) error {
		// Bloquea la fila del lote: serializa allocate/transfer/consume del mismo lote
		batch, err := batchRepo.GetForUpdate(in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		sum, err := allocRepo.SumRemainingByBatch(in.BatchID)
		if err != nil {
			return err
		}
		if sum.Add(in.Quantity).GreaterThan(batch.RemainingQuantity) {
			return domain.ErrInsufficientBatchQuantity
		}
		now := time.Now()
		alloc, err := allocRepo.Get(in.BatchID, in.StoreID)
		if err != nil {
			return err
		}
		if alloc == nil {
			alloc = &entity.Allocation{
				BatchID:           in.BatchID,
				StoreID:           in.StoreID,
				AllocatedQuantity: decimal.Zero,
				RemainingQuantity: decimal.Zero,
				CreatedAt:         now,
			}
		}
		alloc.AllocatedQuantity = alloc.AllocatedQuantity.Add(in.Quantity)
		alloc.RemainingQuantity = alloc.RemainingQuantity.Add(in.Quantity)
		alloc.UpdatedAt = now
		if err := allocRepo.Upsert(alloc); err != nil {
			return err
		}
		result = alloc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toAllocationResponse(result), nil
}

// Transfer mueve unidades asignadas de una tienda a otra del mismo tenant, atómicamente:
// resta remaining en origen e incrementa allocated y remaining en destino (creándolo si no existe).
// La suma de remaining origen+destino queda idéntica: no se pierde ni duplica nada.
// Falla con ErrInsufficientAllocation si el origen no tiene remaining suficiente.
func (uc *LedgerUseCase) Transfer(ctx context.Context, rctx entity.RequestContext, in dto.TransferRequest) error {
	if err := uc.requireStoreWrite(ctx, rctx); err != nil {
		return err
	}
	if !in.Quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	if in.FromStoreID == in.ToStoreID {
		return domain.ErrInvalidInput
	}
	if _, err := uc.batchForTenant(rctx, in.BatchID); err != nil {
		return err
	}
	if _, err := uc.storeForTenant(rctx, in.FromStoreID); err != nil {
		return err
	}
	toStore, err := uc.storeForTenant(rctx, in.ToStoreID)
	if err != nil {
		return err
	}
	if !toStore.IsActive {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, allocRepo repository.AllocationRepository) error {
		batch, err := batchRepo.GetForUpdate(in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		src, err := allocRepo.Get(in.BatchID, in.FromStoreID)
		if err != nil {
			return err
		}
		if src == nil || src.RemainingQuantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientAllocation
		}
		now := time.Now()
		dst, err := allocRepo.Get(in.BatchID, in.ToStoreID)
		if err != nil {
			return err
		}
		if dst == nil {
			dst = &entity.Allocation{
				BatchID:           in.BatchID,
				StoreID:           in.ToStoreID,
				AllocatedQuantity: decimal.Zero,
				RemainingQuantity: decimal.Zero,
				CreatedAt:         now,
			}
		}
		src.RemainingQuantity = src.RemainingQuantity.Sub(in.Quantity)
		dst.AllocatedQuantity = dst.AllocatedQuantity.Add(in.Quantity)
		dst.RemainingQuantity = dst.RemainingQuantity.Add(in.Quantity)
		src.UpdatedAt = now
		dst.UpdatedAt = now
		if err := allocRepo.Upsert(src); err != nil {
			return err
		}
		return allocRepo.Upsert(dst)
	})
}

// Consume descuenta unidades vendidas/reservadas en una tienda: decrementa el
// remaining de la asignación y el remaining del lote en la misma transacción
// (actualizar solo un lado rompería el invariante y nunca debe ser observable).
// Falla con ErrInsufficientAllocation si la tienda no tiene asignado suficiente,
// aunque el lote aún tenga stock en otras tiendas.
func (uc *LedgerUseCase) Consume(ctx context.Context, rctx entity.RequestContext, in dto.ConsumeRequest) error {
	if err := uc.requireStoreWrite(ctx, rctx); err != nil {
		return err
	}
	if !in.Quantity.IsPositive() {
		return domain.ErrInvalidQuantity
	}
	if _, err := uc.batchForTenant(rctx, in.BatchID); err != nil {
		return err
	}
	store, err := uc.storeForTenant(rctx, in.StoreID)
	if err != nil {
		return err
	}
	if !store.IsActive {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, allocRepo repository.AllocationRepository) error {
		batch, err := batchRepo.GetForUpdate(in.BatchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}
		alloc, err := allocRepo.Get(in.BatchID, in.StoreID)
		if err != nil {
			return err
		}
		if alloc == nil || alloc.RemainingQuantity.LessThan(in.Quantity) {
			return domain.ErrInsufficientAllocation
		}
		now := time.Now()
		alloc.RemainingQuantity = alloc.RemainingQuantity.Sub(in.Quantity)
		alloc.UpdatedAt = now
		batch.RemainingQuantity = batch.RemainingQuantity.Sub(in.Quantity)
		batch.UpdatedAt = now
		if err := allocRepo.Upsert(alloc); err != nil {
			return err
		}
		return batchRepo.Update(batch)
	})
}

// AvailableQuantity devuelve el remaining de la asignación (lote, tienda).
// Sin fila de asignación, la porción no asignada del lote (remaining del lote
// menos Σ remaining asignado) está disponible solo en la tienda principal;
// cualquier otra tienda sin asignación tiene cero.
func (uc *LedgerUseCase) AvailableQuantity(ctx context.Context, rctx entity.RequestContext, storeID, batchID string) (decimal.Decimal, error) {
	batch, err := uc.batchForTenant(rctx, batchID)
	if err != nil {
		return decimal.Zero, err
	}
	store, err := uc.storeForTenant(rctx, storeID)
	if err != nil {
		return decimal.Zero, err
	}
	alloc, err := uc.allocRepo.Get(batchID, storeID)
	if err != nil {
		return decimal.Zero, err
	}
	if alloc != nil {
		return alloc.RemainingQuantity, nil
	}
	if store.IsMain {
		sum, err := uc.allocRepo.SumRemainingByBatch(batchID)
		if err != nil {
			return decimal.Zero, err
		}
		return batch.RemainingQuantity.Sub(sum), nil
	}
	return decimal.Zero, nil
}

// ListAllocations lista las asignaciones de una tienda del tenant.
func (uc *LedgerUseCase) ListAllocations(ctx context.Context, rctx entity.RequestContext, storeID string) (*dto.AllocationListResponse, error) {
	if _, err := uc.storeForTenant(rctx, storeID); err != nil {
		return nil, err
	}
	list, err := uc.allocRepo.ListByStore(storeID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AllocationResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAllocationResponse(a))
	}
	return &dto.AllocationListResponse{Items: items}, nil
}

func toAllocationResponse(a *entity.Allocation) *dto.AllocationResponse {
	if a == nil {
		return nil
	}
	return &dto.AllocationResponse{
		BatchID:           a.BatchID,
		StoreID:           a.StoreID,
		AllocatedQuantity: a.AllocatedQuantity,
		RemainingQuantity: a.RemainingQuantity,
		UpdatedAt:         a.UpdatedAt,
	}
}

func toBatchResponse(b *entity.InventoryBatch) *dto.BatchResponse {
	if b == nil {
		return nil
	}
	return &dto.BatchResponse{
		ID:                b.ID,
		TenantID:          b.TenantID,
		ItemID:            b.ItemID,
		InitialQuantity:   b.InitialQuantity,
		RemainingQuantity: b.RemainingQuantity,
		ReceivedAt:        b.ReceivedAt,
	}
}

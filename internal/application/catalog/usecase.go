package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CatalogUseCase alta y consulta de productos. Los productos pertenecen siempre
// a la tienda principal del tenant: el alcance por tienda nunca cambia su propiedad.
type CatalogUseCase struct {
	itemRepo repository.ItemRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(itemRepo repository.ItemRepository) *CatalogUseCase {
	return &CatalogUseCase{itemRepo: itemRepo}
}

// CreateItem crea un producto bajo el tenant del contexto.
func (uc *CatalogUseCase) CreateItem(ctx context.Context, rctx entity.RequestContext, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:        uuid.New().String(),
		TenantID:  rctx.TenantID,
		SKU:       in.SKU,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ListItems lista productos del tenant con paginación.
func (uc *CatalogUseCase) ListItems(ctx context.Context, rctx entity.RequestContext, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.itemRepo.ListByTenant(rctx.TenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toItemResponse(i *entity.InventoryItem) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:        i.ID,
		TenantID:  i.TenantID,
		SKU:       i.SKU,
		Name:      i.Name,
		CreatedAt: i.CreatedAt,
	}
}

package directory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// DirectoryUseCase mantiene la relación tenant→tiendas: alta de tenant con su
// tienda principal (atómica), subtiendas según política, asignación de actores
// y el invariante de una sola tienda principal por tenant.
type DirectoryUseCase struct {
	txRunner       TxRunner
	tenantRepo     repository.TenantRepository
	storeRepo      repository.StoreRepository
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
}

// NewDirectoryUseCase construye el caso de uso.
func NewDirectoryUseCase(
	txRunner TxRunner,
	tenantRepo repository.TenantRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
	assignmentRepo repository.AssignmentRepository,
) *DirectoryUseCase {
	return &DirectoryUseCase{
		txRunner:       txRunner,
		tenantRepo:     tenantRepo,
		storeRepo:      storeRepo,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
	}
}

// NameKey normaliza un nombre de tienda para la comparación de unicidad:
// NFC + casefold Unicode ("Bodega Sur" y "bodega sur" colisionan).
func NameKey(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}

// CreateTenant crea el tenant y su tienda principal en la misma transacción.
// Política por defecto SINGLE_STORE; nombre de tienda principal por defecto "Principal".
func (uc *DirectoryUseCase) CreateTenant(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	policy := in.StorePolicy
	if policy == "" {
		policy = entity.PolicySingleStore
	}
	if policy != entity.PolicySingleStore && policy != entity.PolicyMultiStore {
		return nil, domain.ErrInvalidInput
	}
	mainName := in.MainStoreName
	if mainName == "" {
		mainName = "Principal"
	}

	now := time.Now()
	tenant := &entity.Tenant{
		ID:          uuid.New().String(),
		Name:        in.Name,
		StorePolicy: policy,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	var mainStore *entity.Store

	err := uc.txRunner.RunDirectory(ctx, func(tenantRepo repository.TenantRepository, storeRepo repository.StoreRepository) error {
		if err := tenantRepo.Create(tenant); err != nil {
			return err
		}
		store, err := createMainStore(storeRepo, tenant.ID, mainName, now)
		if err != nil {
			return err
		}
		mainStore = store
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := toTenantResponse(tenant)
	resp.MainStore = toStoreResponse(mainStore)
	return resp, nil
}

// CreateMainStore crea la tienda principal de un tenant existente.
// Falla con ErrDuplicateMainStore si ya existe una; en el flujo normal la
// principal nace con el tenant (CreateTenant), esto cubre reparación de datos.
func (uc *DirectoryUseCase) CreateMainStore(ctx context.Context, tenantID, name string) (*dto.StoreResponse, error) {
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	if name == "" {
		name = "Principal"
	}
	var created *entity.Store
	err = uc.txRunner.RunDirectory(ctx, func(_ repository.TenantRepository, storeRepo repository.StoreRepository) error {
		store, err := createMainStore(storeRepo, tenantID, name, time.Now())
		if err != nil {
			return err
		}
		created = store
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toStoreResponse(created), nil
}

// createMainStore verifica y crea la tienda principal dentro de la transacción del caller.
func createMainStore(storeRepo repository.StoreRepository, tenantID, name string, now time.Time) (*entity.Store, error) {
	existing, err := storeRepo.GetMainByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateMainStore
	}
	store := &entity.Store{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		NameKey:   NameKey(name),
		IsMain:    true,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := storeRepo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

// CreateSubStore crea una tienda adicional bajo el tenant.
// Falla con ErrPolicyViolation si la política es SINGLE_STORE y con
// ErrDuplicateStoreName si el nombre (case-insensitive) ya existe en el tenant.
func (uc *DirectoryUseCase) CreateSubStore(ctx context.Context, tenantID, name string) (*dto.StoreResponse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	if !tenant.AllowsSubStores() {
		return nil, domain.ErrPolicyViolation
	}

	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		NameKey:   NameKey(name),
		IsMain:    false,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// El chequeo de nombre y el insert van en la misma transacción para no
	// dejar pasar duplicados concurrentes (además del índice único en BD).
	err = uc.txRunner.RunDirectory(ctx, func(_ repository.TenantRepository, storeRepo repository.StoreRepository) error {
		dup, err := storeRepo.GetByNameKey(tenantID, store.NameKey)
		if err != nil {
			return err
		}
		if dup != nil {
			return domain.ErrDuplicateStoreName
		}
		return storeRepo.Create(store)
	})
	if err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// AssignActorToStore fija la tienda por defecto de un actor.
// Falla con ErrCrossTenantAssignment si la tienda pertenece a otro tenant que el actor.
func (uc *DirectoryUseCase) AssignActorToStore(ctx context.Context, actorID, storeID string) error {
	user, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	if store.TenantID != user.TenantID {
		return domain.ErrCrossTenantAssignment
	}
	return uc.assignmentRepo.Upsert(&entity.StoreAssignment{
		ActorID:   actorID,
		StoreID:   storeID,
		CreatedAt: time.Now(),
	})
}

// UnassignActor retira la tienda por defecto del actor. Sin asignación previa
// no es error: el resultado observable es el mismo (el actor queda sin tienda).
func (uc *DirectoryUseCase) UnassignActor(ctx context.Context, actorID string) error {
	user, err := uc.userRepo.GetByID(actorID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.assignmentRepo.Delete(actorID)
}

// ResolveDefaultStore devuelve la tienda por defecto del actor bajo el tenant, o nil.
func (uc *DirectoryUseCase) ResolveDefaultStore(ctx context.Context, actorID, tenantID string) (*dto.StoreResponse, error) {
	store, err := uc.assignmentRepo.ResolveDefault(actorID, tenantID)
	if err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// ListStores lista las tiendas del tenant en orden de creación, principal primero.
func (uc *DirectoryUseCase) ListStores(ctx context.Context, tenantID string) (*dto.StoreListResponse, error) {
	list, err := uc.storeRepo.ListByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{Items: items}, nil
}

// Deactivate desactiva una tienda (nunca borrado físico: las asignaciones la referencian).
// Falla con ErrMainStoreProtected si es la principal y con ErrCrossTenantAccess
// si la tienda no pertenece al tenant del contexto.
func (uc *DirectoryUseCase) Deactivate(ctx context.Context, tenantID, storeID string) error {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	if store.TenantID != tenantID {
		return domain.ErrCrossTenantAccess
	}
	if store.IsMain {
		return domain.ErrMainStoreProtected
	}
	store.IsActive = false
	store.UpdatedAt = time.Now()
	return uc.storeRepo.Update(store)
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:          t.ID,
		Name:        t.Name,
		StorePolicy: t.StorePolicy,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	return &dto.StoreResponse{
		ID:        s.ID,
		TenantID:  s.TenantID,
		Name:      s.Name,
		IsMain:    s.IsMain,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

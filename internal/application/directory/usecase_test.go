package directory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/directory"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newDirectoryEnv(t *testing.T) (*memory.DB, *directory.DirectoryUseCase) {
	t.Helper()
	db := memory.NewDB()
	runner := memory.NewTxRunner(db)
	uc := directory.NewDirectoryUseCase(runner, db.Tenants(), db.Stores(), db.Users(), db.Assignments())
	return db, uc
}

func createTenant(t *testing.T, uc *directory.DirectoryUseCase, policy string) *dto.TenantResponse {
	t.Helper()
	out, err := uc.CreateTenant(context.Background(), dto.CreateTenantRequest{
		Name: "Distribuidora Sur", StorePolicy: policy,
	})
	require.NoError(t, err)
	return out
}

// countMainStores cuenta las tiendas principales del tenant.
func countMainStores(t *testing.T, db *memory.DB, tenantID string) int {
	t.Helper()
	list, err := db.Stores().ListByTenant(tenantID)
	require.NoError(t, err)
	n := 0
	for _, s := range list {
		if s.IsMain {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateTenant
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTenant_NaceConTiendaPrincipal(t *testing.T) {
	db, uc := newDirectoryEnv(t)

	out := createTenant(t, uc, "")
	require.NotNil(t, out.MainStore, "el alta de tenant debe devolver su tienda principal")
	assert.True(t, out.MainStore.IsMain)
	assert.True(t, out.MainStore.IsActive)
	assert.Equal(t, entity.PolicySingleStore, out.StorePolicy, "la política por defecto es SINGLE_STORE")
	assert.Equal(t, 1, countMainStores(t, db, out.ID))
}

func TestCreateTenant_PoliticaInvalida(t *testing.T) {
	_, uc := newDirectoryEnv(t)
	_, err := uc.CreateTenant(context.Background(), dto.CreateTenantRequest{
		Name: "X", StorePolicy: "TRIPLE_STORE",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateMainStore_DuplicadaRechazada(t *testing.T) {
	db, uc := newDirectoryEnv(t)
	out := createTenant(t, uc, "")

	_, err := uc.CreateMainStore(context.Background(), out.ID, "Otra Principal")
	require.ErrorIs(t, err, domain.ErrDuplicateMainStore)
	assert.Equal(t, 1, countMainStores(t, db, out.ID), "sigue habiendo exactamente una principal")
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSubStore
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSubStore_PoliticaSingleStoreLoRechaza(t *testing.T) {
	_, uc := newDirectoryEnv(t)
	out := createTenant(t, uc, entity.PolicySingleStore)

	_, err := uc.CreateSubStore(context.Background(), out.ID, "Bodega Norte")
	assert.ErrorIs(t, err, domain.ErrPolicyViolation)
}

func TestCreateSubStore_MultiStorePermiteYListaEnOrden(t *testing.T) {
	_, uc := newDirectoryEnv(t)
	out := createTenant(t, uc, entity.PolicyMultiStore)

	_, err := uc.CreateSubStore(context.Background(), out.ID, "Bodega Norte")
	require.NoError(t, err)
	_, err = uc.CreateSubStore(context.Background(), out.ID, "Bodega Sur")
	require.NoError(t, err)

	list, err := uc.ListStores(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.True(t, list.Items[0].IsMain, "la principal va primero en el listado")
}

func TestCreateSubStore_NombreDuplicadoCaseInsensitive(t *testing.T) {
	_, uc := newDirectoryEnv(t)
	out := createTenant(t, uc, entity.PolicyMultiStore)

	_, err := uc.CreateSubStore(context.Background(), out.ID, "Bodega Sur")
	require.NoError(t, err)

	_, err = uc.CreateSubStore(context.Background(), out.ID, "bodega sur")
	assert.ErrorIs(t, err, domain.ErrDuplicateStoreName,
		"\"Bodega Sur\" y \"bodega sur\" son el mismo nombre")

	_, err = uc.CreateSubStore(context.Background(), out.ID, "  Bodega Sur  ")
	assert.ErrorIs(t, err, domain.ErrDuplicateStoreName, "los espacios alrededor no distinguen nombres")
}

func TestCreateSubStore_MismoNombreEnOtroTenantEsValido(t *testing.T) {
	_, uc := newDirectoryEnv(t)
	a := createTenant(t, uc, entity.PolicyMultiStore)
	b, err := uc.CreateTenant(context.Background(), dto.CreateTenantRequest{
		Name: "Otro Comercio", StorePolicy: entity.PolicyMultiStore,
	})
	require.NoError(t, err)

	_, err = uc.CreateSubStore(context.Background(), a.ID, "Bodega Sur")
	require.NoError(t, err)
	_, err = uc.CreateSubStore(context.Background(), b.ID, "Bodega Sur")
	assert.NoError(t, err, "la unicidad de nombre es por tenant")
}

// ──────────────────────────────────────────────────────────────────────────────
// Deactivate
// ──────────────────────────────────────────────────────────────────────────────

func TestDeactivate_PrincipalProtegida(t *testing.T) {
	_, uc := newDirectoryEnv(t)
	out := createTenant(t, uc, "")

	err := uc.Deactivate(context.Background(), out.ID, out.MainStore.ID)
	assert.ErrorIs(t, err, domain.ErrMainStoreProtected)
}

func TestDeactivate_SubtiendaQuedaInactivaNoBorrada(t *testing.T) {
	db, uc := newDirectoryEnv(t)
	out := createTenant(t, uc, entity.PolicyMultiStore)
	sub, err := uc.CreateSubStore(context.Background(), out.ID, "Bodega Norte")
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(context.Background(), out.ID, sub.ID))

	got, err := db.Stores().GetByID(sub.ID)
	require.NoError(t, err)
	require.NotNil(t, got, "desactivar no borra la fila")
	assert.False(t, got.IsActive)
	assert.Equal(t, 1, countMainStores(t, db, out.ID))
}

func TestDeactivate_TiendaDeOtroTenant(t *testing.T) {
	_, uc := newDirectoryEnv(t)
	a := createTenant(t, uc, entity.PolicyMultiStore)
	b := createTenantNamed(t, uc, "Comercio B")
	subB, err := uc.CreateSubStore(context.Background(), b.ID, "Bodega B")
	require.NoError(t, err)

	err = uc.Deactivate(context.Background(), a.ID, subB.ID)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
}

func createTenantNamed(t *testing.T, uc *directory.DirectoryUseCase, name string) *dto.TenantResponse {
	t.Helper()
	out, err := uc.CreateTenant(context.Background(), dto.CreateTenantRequest{
		Name: name, StorePolicy: entity.PolicyMultiStore,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// AssignActorToStore / ResolveDefaultStore
// ──────────────────────────────────────────────────────────────────────────────

func TestAssignActor_CrossTenantRechazado(t *testing.T) {
	db, uc := newDirectoryEnv(t)
	a := createTenant(t, uc, entity.PolicyMultiStore)
	b := createTenantNamed(t, uc, "Comercio B")

	actorID := uuid.New().String()
	now := time.Now()
	require.NoError(t, db.Users().Create(&entity.User{
		ID: actorID, TenantID: a.ID, Email: "v@a.com", Role: entity.RoleVendedor,
		Status: "active", CreatedAt: now, UpdatedAt: now,
	}))

	err := uc.AssignActorToStore(context.Background(), actorID, b.MainStore.ID)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAssignment)
}

func TestAssignActor_YResolverTiendaPorDefecto(t *testing.T) {
	db, uc := newDirectoryEnv(t)
	a := createTenant(t, uc, entity.PolicyMultiStore)
	sub, err := uc.CreateSubStore(context.Background(), a.ID, "Bodega Norte")
	require.NoError(t, err)

	actorID := uuid.New().String()
	now := time.Now()
	require.NoError(t, db.Users().Create(&entity.User{
		ID: actorID, TenantID: a.ID, Email: "v@a.com", Role: entity.RoleVendedor,
		Status: "active", CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, uc.AssignActorToStore(context.Background(), actorID, sub.ID))

	got, err := uc.ResolveDefaultStore(context.Background(), actorID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sub.ID, got.ID)

	// Reasignar reemplaza (una sola tienda por defecto por actor).
	require.NoError(t, uc.AssignActorToStore(context.Background(), actorID, a.MainStore.ID))
	got, err = uc.ResolveDefaultStore(context.Background(), actorID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.MainStore.ID, got.ID)
}

func TestUnassignActor_RetiraLaTiendaPorDefecto(t *testing.T) {
	db, uc := newDirectoryEnv(t)
	a := createTenant(t, uc, entity.PolicyMultiStore)
	sub, err := uc.CreateSubStore(context.Background(), a.ID, "Bodega Norte")
	require.NoError(t, err)

	actorID := uuid.New().String()
	now := time.Now()
	require.NoError(t, db.Users().Create(&entity.User{
		ID: actorID, TenantID: a.ID, Email: "v@a.com", Role: entity.RoleVendedor,
		Status: "active", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, uc.AssignActorToStore(context.Background(), actorID, sub.ID))

	require.NoError(t, uc.UnassignActor(context.Background(), actorID))

	got, err := uc.ResolveDefaultStore(context.Background(), actorID, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "tras retirar la asignación el actor queda sin tienda por defecto")

	// Retirar de nuevo no es error.
	assert.NoError(t, uc.UnassignActor(context.Background(), actorID))
}

func TestUnassignActor_ActorInexistente(t *testing.T) {
	_, uc := newDirectoryEnv(t)
	err := uc.UnassignActor(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// NameKey
// ──────────────────────────────────────────────────────────────────────────────

func TestNameKey_NormalizaCaseYEspacios(t *testing.T) {
	assert.Equal(t, directory.NameKey("Bodega Sur"), directory.NameKey("bodega sur"))
	assert.Equal(t, directory.NameKey("Bodega Sur"), directory.NameKey("  BODEGA SUR  "))
	assert.NotEqual(t, directory.NameKey("Bodega Sur"), directory.NameKey("Bodega Norte"))
}

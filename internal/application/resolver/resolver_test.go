package resolver_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/resolver"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/idcodec"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret = "resolver-test-secret"
	testIssuer = "almacen-test"
	testExpMin = 60
)

type resolverEnv struct {
	db    *memory.DB
	codec *idcodec.Codec
	res   *resolver.Resolver

	tenantID  string
	mainStore string
	subStore  string
	actorID   string
}

// newResolverEnv monta el resolver sobre la base en memoria con un tenant,
// tienda principal + subtienda, y un actor vendedor sin asignación inicial.
func newResolverEnv(t *testing.T) *resolverEnv {
	t.Helper()
	db := memory.NewDB()
	codec, err := idcodec.New([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	env := &resolverEnv{
		db:       db,
		codec:    codec,
		res:      resolver.New(testSecret, codec, db.Stores(), db.Assignments()),
		tenantID: uuid.New().String(),
		actorID:  uuid.New().String(),
	}

	now := time.Now()
	require.NoError(t, db.Tenants().Create(&entity.Tenant{
		ID: env.tenantID, Name: "Comercio", StorePolicy: entity.PolicyMultiStore,
		Status: "active", CreatedAt: now, UpdatedAt: now,
	}))
	env.mainStore = uuid.New().String()
	require.NoError(t, db.Stores().Create(&entity.Store{
		ID: env.mainStore, TenantID: env.tenantID, Name: "Principal", NameKey: "principal",
		IsMain: true, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
	env.subStore = uuid.New().String()
	require.NoError(t, db.Stores().Create(&entity.Store{
		ID: env.subStore, TenantID: env.tenantID, Name: "Norte", NameKey: "norte",
		IsMain: false, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
	return env
}

// credential emite un JWT con los claims cifrados indicados. storeID vacío = sin claim de tienda.
func (e *resolverEnv) credential(t *testing.T, role, storeID string) string {
	t.Helper()
	tenantToken, err := e.codec.Encode(e.tenantID)
	require.NoError(t, err)
	storeToken := ""
	if storeID != "" {
		storeToken, err = e.codec.Encode(storeID)
		require.NoError(t, err)
	}
	tok, err := jwt.Generate(testSecret, e.actorID, tenantToken, storeToken, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func (e *resolverEnv) assign(t *testing.T, storeID string) {
	t.Helper()
	require.NoError(t, e.db.Assignments().Upsert(&entity.StoreAssignment{
		ActorID: e.actorID, StoreID: storeID, CreatedAt: time.Now(),
	}))
}

func (e *resolverEnv) deactivate(t *testing.T, storeID string) {
	t.Helper()
	store, err := e.db.Stores().GetByID(storeID)
	require.NoError(t, err)
	require.NotNil(t, store)
	store.IsActive = false
	require.NoError(t, e.db.Stores().Update(store))
}

// ──────────────────────────────────────────────────────────────────────────────
// Credencial con claim de tienda
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_ClaimDeTiendaValido(t *testing.T) {
	env := newResolverEnv(t)
	cred := env.credential(t, entity.RoleVendedor, env.subStore)

	rctx, err := env.res.Resolve(context.Background(), cred, "ledger.allocations")
	require.NoError(t, err)
	assert.Equal(t, env.tenantID, rctx.TenantID)
	assert.Equal(t, env.subStore, rctx.StoreID)
	assert.Equal(t, env.actorID, rctx.ActorID)
	assert.Equal(t, entity.RoleVendedor, rctx.Role)
}

func TestResolve_TiendaDeOtroTenantEnElClaim(t *testing.T) {
	env := newResolverEnv(t)
	// Tienda real pero de otro tenant: jamás se sustituye en silencio.
	otherStore := uuid.New().String()
	now := time.Now()
	require.NoError(t, env.db.Stores().Create(&entity.Store{
		ID: otherStore, TenantID: uuid.New().String(), Name: "Ajena", NameKey: "ajena",
		IsMain: true, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
	cred := env.credential(t, entity.RoleVendedor, otherStore)

	_, err := env.res.Resolve(context.Background(), cred, "ledger.allocations")
	assert.ErrorIs(t, err, domain.ErrStoreTenantMismatch)
}

func TestResolve_TiendaInexistenteEnElClaim(t *testing.T) {
	env := newResolverEnv(t)
	cred := env.credential(t, entity.RoleVendedor, uuid.New().String())

	_, err := env.res.Resolve(context.Background(), cred, "ledger.allocations")
	assert.ErrorIs(t, err, domain.ErrStoreTenantMismatch)
}

func TestResolve_TiendaDesactivadaEnElClaim(t *testing.T) {
	env := newResolverEnv(t)
	env.deactivate(t, env.subStore)
	cred := env.credential(t, entity.RoleVendedor, env.subStore)

	// Una credencial emitida antes de desactivar la tienda deja de resolver:
	// el caller debe re-seleccionar, nunca se sustituye por otra en silencio.
	_, err := env.res.Resolve(context.Background(), cred, "ledger.allocations")
	assert.ErrorIs(t, err, domain.ErrStoreTenantMismatch)
}

// ──────────────────────────────────────────────────────────────────────────────
// Credenciales inválidas
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_TokenBasura(t *testing.T) {
	env := newResolverEnv(t)
	_, err := env.res.Resolve(context.Background(), "no.es.un.jwt", "ledger.allocations")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolve_SecretIncorrecto(t *testing.T) {
	env := newResolverEnv(t)
	tenantToken, err := env.codec.Encode(env.tenantID)
	require.NoError(t, err)
	tok, err := jwt.Generate("otro-secret", env.actorID, tenantToken, "", entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = env.res.Resolve(context.Background(), tok, "ledger.allocations")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestResolve_ClaimDeTenantCorrupto(t *testing.T) {
	env := newResolverEnv(t)
	// Token firmado correctamente pero con el claim de tenant sin cifrar.
	tok, err := jwt.Generate(testSecret, env.actorID, "tenant-crudo-sin-cifrar", "", entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = env.res.Resolve(context.Background(), tok, "ledger.allocations")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallback sin claim de tienda
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_RolTenantWideResuelveLaPrincipal(t *testing.T) {
	env := newResolverEnv(t)
	cred := env.credential(t, entity.RoleAdmin, "")

	rctx, err := env.res.Resolve(context.Background(), cred, "ledger.allocations")
	require.NoError(t, err)
	assert.Equal(t, env.mainStore, rctx.StoreID, "admin sin claim de tienda opera la principal")
	assert.True(t, rctx.TenantWide())
}

func TestResolve_VendedorConAsignacionUsaSuTienda(t *testing.T) {
	env := newResolverEnv(t)
	env.assign(t, env.subStore)
	cred := env.credential(t, entity.RoleVendedor, "")

	rctx, err := env.res.Resolve(context.Background(), cred, "ledger.allocations")
	require.NoError(t, err)
	assert.Equal(t, env.subStore, rctx.StoreID)
}

func TestResolve_AsignacionATiendaDesactivadaNoResuelve(t *testing.T) {
	env := newResolverEnv(t)
	env.assign(t, env.subStore)
	env.deactivate(t, env.subStore)
	cred := env.credential(t, entity.RoleVendedor, "")

	_, err := env.res.Resolve(context.Background(), cred, "ledger.allocations")
	assert.ErrorIs(t, err, domain.ErrNoStoreAssigned,
		"la asignación a una tienda desactivada cuenta como no asignado")
}

func TestResolve_VendedorSinAsignacionFalla(t *testing.T) {
	env := newResolverEnv(t)
	cred := env.credential(t, entity.RoleVendedor, "")

	_, err := env.res.Resolve(context.Background(), cred, "ledger.allocations")
	assert.ErrorIs(t, err, domain.ErrNoStoreAssigned)
}

func TestResolve_OperacionExentaRecibeContextoSinTienda(t *testing.T) {
	env := newResolverEnv(t)
	cred := env.credential(t, entity.RoleVendedor, "")

	rctx, err := env.res.Resolve(context.Background(), cred, "auth.select")
	require.NoError(t, err, "la operación exenta no exige tienda resuelta")
	assert.Empty(t, rctx.StoreID)
	assert.Equal(t, env.tenantID, rctx.TenantID)
	assert.Equal(t, env.actorID, rctx.ActorID)
}

func TestIsExempt(t *testing.T) {
	env := newResolverEnv(t)
	assert.True(t, env.res.IsExempt("auth.login"))
	assert.True(t, env.res.IsExempt("tenant.create"))
	assert.True(t, env.res.IsExempt("health"))
	assert.False(t, env.res.IsExempt("ledger.allocations"))
}

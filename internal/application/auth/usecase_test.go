package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/idcodec"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "auth-test-secret"

type authEnv struct {
	db    *memory.DB
	codec *idcodec.Codec
	uc    *auth.AuthUseCase

	tenantID  string
	mainStore string
	subStore  string
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()
	db := memory.NewDB()
	codec, err := idcodec.New([]byte("fedcba9876543210fedcba9876543210"))
	require.NoError(t, err)

	env := &authEnv{
		db:       db,
		codec:    codec,
		tenantID: uuid.New().String(),
	}
	env.uc = auth.NewAuthUseCase(db.Users(), db.Tenants(), db.Stores(), db.Assignments(), codec, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "almacen-test",
	})

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

func (e *authEnv) register(t *testing.T, email, role, storeID string) *dto.UserResponse {
	t.Helper()
	out, err := e.uc.RegisterUser(context.Background(), dto.RegisterRequest{
		TenantID: e.tenantID, Email: email, Password: "secreta-123", Role: role, StoreID: storeID,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterUser
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EmailDuplicadoEnElTenant(t *testing.T) {
	env := newAuthEnv(t)
	env.register(t, "v@comercio.com", entity.RoleVendedor, "")

	_, err := env.uc.RegisterUser(context.Background(), dto.RegisterRequest{
		TenantID: env.tenantID, Email: "v@comercio.com", Password: "otra-clave-9",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_TiendaDeOtroTenantRechazada(t *testing.T) {
	env := newAuthEnv(t)
	otherStore := uuid.New().String()
	now := time.Now()
	require.NoError(t, env.db.Stores().Create(&entity.Store{
		ID: otherStore, TenantID: uuid.New().String(), Name: "Ajena", NameKey: "ajena",
		IsMain: true, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))

	_, err := env.uc.RegisterUser(context.Background(), dto.RegisterRequest{
		TenantID: env.tenantID, Email: "x@comercio.com", Password: "secreta-123", StoreID: otherStore,
	})
	assert.ErrorIs(t, err, domain.ErrCrossTenantAssignment)
}

func TestRegister_NoExponePasswordHash(t *testing.T) {
	env := newAuthEnv(t)
	out := env.register(t, "v@comercio.com", "", "")
	assert.Equal(t, entity.RoleVendedor, out.Role, "rol por defecto vendedor")
	assert.Equal(t, "active", out.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialLlevaClaimsCifrados(t *testing.T) {
	env := newAuthEnv(t)
	env.register(t, "b@comercio.com", entity.RoleBodeguero, env.subStore)

	out, err := env.uc.Login(context.Background(), dto.LoginRequest{
		Email: "b@comercio.com", Password: "secreta-123",
	})
	require.NoError(t, err)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	// Los claims van cifrados: nunca el ID crudo.
	assert.NotEqual(t, env.tenantID, claims.TenantToken)
	assert.NotEqual(t, env.subStore, claims.StoreToken)

	tenantID, err := env.codec.Decode(claims.TenantToken)
	require.NoError(t, err)
	assert.Equal(t, env.tenantID, tenantID)
	storeID, err := env.codec.Decode(claims.StoreToken)
	require.NoError(t, err)
	assert.Equal(t, env.subStore, storeID)
}

func TestLogin_AdminSinClaimDeTienda(t *testing.T) {
	env := newAuthEnv(t)
	env.register(t, "a@comercio.com", entity.RoleAdmin, "")

	out, err := env.uc.Login(context.Background(), dto.LoginRequest{
		Email: "a@comercio.com", Password: "secreta-123",
	})
	require.NoError(t, err)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Empty(t, claims.StoreToken, "los roles de tenant completo no fijan tienda al loguear")
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	env := newAuthEnv(t)
	env.register(t, "v@comercio.com", entity.RoleVendedor, "")

	_, err := env.uc.Login(context.Background(), dto.LoginRequest{
		Email: "v@comercio.com", Password: "equivocada",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	env := newAuthEnv(t)
	_, err := env.uc.Login(context.Background(), dto.LoginRequest{
		Email: "nadie@comercio.com", Password: "da-igual",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// SelectStore
// ──────────────────────────────────────────────────────────────────────────────

func TestSelectStore_AdminPuedeCualquierTiendaDelTenant(t *testing.T) {
	env := newAuthEnv(t)
	user := env.register(t, "a@comercio.com", entity.RoleAdmin, "")
	rctx := entity.RequestContext{TenantID: env.tenantID, ActorID: user.ID, Role: entity.RoleAdmin}

	out, err := env.uc.SelectStore(context.Background(), rctx, env.subStore)
	require.NoError(t, err)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	storeID, err := env.codec.Decode(claims.StoreToken)
	require.NoError(t, err)
	assert.Equal(t, env.subStore, storeID, "la credencial nueva lleva la tienda seleccionada")
}

func TestSelectStore_VendedorSoloSuAsignada(t *testing.T) {
	env := newAuthEnv(t)
	user := env.register(t, "v@comercio.com", entity.RoleVendedor, env.subStore)
	rctx := entity.RequestContext{TenantID: env.tenantID, ActorID: user.ID, Role: entity.RoleVendedor}

	// Su tienda asignada: permitido.
	_, err := env.uc.SelectStore(context.Background(), rctx, env.subStore)
	require.NoError(t, err)

	// La principal no es su asignada: denegado.
	_, err = env.uc.SelectStore(context.Background(), rctx, env.mainStore)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestSelectStore_TiendaDeOtroTenant(t *testing.T) {
	env := newAuthEnv(t)
	user := env.register(t, "a@comercio.com", entity.RoleAdmin, "")
	rctx := entity.RequestContext{TenantID: env.tenantID, ActorID: user.ID, Role: entity.RoleAdmin}

	otherStore := uuid.New().String()
	now := time.Now()
	require.NoError(t, env.db.Stores().Create(&entity.Store{
		ID: otherStore, TenantID: uuid.New().String(), Name: "Ajena", NameKey: "ajena",
		IsMain: true, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))

	_, err := env.uc.SelectStore(context.Background(), rctx, otherStore)
	assert.ErrorIs(t, err, domain.ErrCrossTenantAccess)
}

package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/resolver"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/idcodec"
	pkgjwt "github.com/jhoicas/Almacen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "almacen-test"
	testExpMin    = 60
)

type middlewareEnv struct {
	db    *memory.DB
	codec *idcodec.Codec
	res   *resolver.Resolver

	tenantID  string
	mainStore string
	actorID   string
}

// newMiddlewareEnv monta resolver + base en memoria con tenant y tienda principal.
func newMiddlewareEnv(t *testing.T) *middlewareEnv {
	t.Helper()
	db := memory.NewDB()
	codec, err := idcodec.New([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	env := &middlewareEnv{
		db:       db,
		codec:    codec,
		res:      resolver.New(testJWTSecret, codec, db.Stores(), db.Assignments()),
		tenantID: uuid.New().String(),
		actorID:  uuid.New().String(),
	}
	now := time.Now()
	env.mainStore = uuid.New().String()
	require.NoError(t, db.Stores().Create(&entity.Store{
		ID: env.mainStore, TenantID: env.tenantID, Name: "Principal", NameKey: "principal",
		IsMain: true, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
	return env
}

// buildTestApp construye una app Fiber mínima con ContextMiddleware (+ RequireRole
// opcional) y un handler que devuelve el contexto resuelto.
func (e *middlewareEnv) buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.ContextMiddleware(e.res, "ledger.allocations")}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		rctx := apphttp.GetRequestContext(c)
		return c.JSON(fiber.Map{
			"tenant_id": rctx.TenantID,
			"store_id":  rctx.StoreID,
			"actor_id":  rctx.ActorID,
			"role":      rctx.Role,
		})
	})
	app.Get("/protected", handlers...)
	return app
}

// tokenFor genera una credencial firmada con claims cifrados para el rol dado.
func (e *middlewareEnv) tokenFor(t *testing.T, role, storeID string) string {
	t.Helper()
	tenantToken, err := e.codec.Encode(e.tenantID)
	require.NoError(t, err)
	storeToken := ""
	if storeID != "" {
		storeToken, err = e.codec.Encode(storeID)
		require.NoError(t, err)
	}
	tok, err := pkgjwt.Generate(testJWTSecret, e.actorID, tenantToken, storeToken, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// ContextMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestContextMiddleware_ResuelveContextoCompleto(t *testing.T) {
	env := newMiddlewareEnv(t)
	resp := doRequest(t, env.buildTestApp(), env.tokenFor(t, entity.RoleAdmin, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, env.tenantID, body["tenant_id"])
	assert.Equal(t, env.mainStore, body["store_id"], "admin sin claim de tienda resuelve la principal")
	assert.Equal(t, env.actorID, body["actor_id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestContextMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	env := newMiddlewareEnv(t)
	resp := doRequest(t, env.buildTestApp(), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestContextMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	env := newMiddlewareEnv(t)
	resp := doRequest(t, env.buildTestApp(), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHENTICATED")
}

func TestContextMiddleware_VendedorSinAsignacion_Retorna403(t *testing.T) {
	env := newMiddlewareEnv(t)
	resp := doRequest(t, env.buildTestApp(), env.tokenFor(t, entity.RoleVendedor, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NO_STORE_ASSIGNED")
}

func TestContextMiddleware_TiendaDeOtroTenant_Retorna403(t *testing.T) {
	env := newMiddlewareEnv(t)
	otherStore := uuid.New().String()
	now := time.Now()
	require.NoError(t, env.db.Stores().Create(&entity.Store{
		ID: otherStore, TenantID: uuid.New().String(), Name: "Ajena", NameKey: "ajena",
		IsMain: true, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))

	resp := doRequest(t, env.buildTestApp(), env.tokenFor(t, entity.RoleVendedor, otherStore))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "STORE_TENANT_MISMATCH")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	env := newMiddlewareEnv(t)
	app := env.buildTestApp(entity.RoleOwner, entity.RoleAdmin)

	resp := doRequest(t, app, env.tokenFor(t, entity.RoleAdmin, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a owner/admin")
}

func TestRequireRole_BodegueroBloqueadoEnRutaAdmin(t *testing.T) {
	env := newMiddlewareEnv(t)
	app := env.buildTestApp(entity.RoleOwner, entity.RoleAdmin)

	resp := doRequest(t, app, env.tokenFor(t, entity.RoleBodeguero, env.mainStore))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "PERMISSION_DENIED")
}

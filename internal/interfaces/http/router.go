package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/directory"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/application/resolver"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DirectoryUC *directory.DirectoryUseCase
	LedgerUC    *ledger.LedgerUseCase
	CatalogUC   *catalog.CatalogUseCase
	AuthUC      *auth.AuthUseCase
	Resolver    *resolver.Resolver
}

// Router registra las rutas de la API.
// Cada grupo protegido resuelve el contexto (tenant, tienda, actor) una sola vez
// vía ContextMiddleware con el nombre de operación del grupo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login/register públicos; select-store requiere credencial)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/select-store",
		ContextMiddleware(deps.Resolver, "auth.select"),
		authHandler.SelectStore)

	// Tenants (signup, público)
	tenants := api.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.DirectoryUC)
	tenants.Post("/", tenantHandler.Create)

	// Stores (protegido; mutaciones de directorio solo para roles de tenant completo)
	stores := api.Group("/stores", ContextMiddleware(deps.Resolver, "directory.stores"))
	storeHandler := NewStoreHandler(deps.DirectoryUC)
	stores.Get("/", storeHandler.List)
	stores.Post("/", RequireRole(entity.RoleOwner, entity.RoleAdmin), storeHandler.Create)
	stores.Delete("/:id", RequireRole(entity.RoleOwner, entity.RoleAdmin), storeHandler.Deactivate)
	stores.Post("/assignments", RequireRole(entity.RoleOwner, entity.RoleAdmin), storeHandler.AssignActor)
	stores.Delete("/assignments/:actorId", RequireRole(entity.RoleOwner, entity.RoleAdmin), storeHandler.UnassignActor)

	// Items (protegido)
	items := api.Group("/items", ContextMiddleware(deps.Resolver, "catalog.items"))
	itemHandler := NewItemHandler(deps.CatalogUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)

	// Ledger de asignaciones por lote (protegido; los permisos finos los decide el caso de uso)
	allocationHandler := NewAllocationHandler(deps.LedgerUC)
	batches := api.Group("/batches", ContextMiddleware(deps.Resolver, "ledger.batches"))
	batches.Post("/", allocationHandler.ReceiveBatch)

	allocations := api.Group("/allocations", ContextMiddleware(deps.Resolver, "ledger.allocations"))
	allocations.Post("/", allocationHandler.Allocate)
	allocations.Post("/transfer", allocationHandler.Transfer)
	allocations.Post("/consume", allocationHandler.Consume)
	allocations.Get("/available", allocationHandler.Available)
	allocations.Get("/", allocationHandler.ListByStore)
}

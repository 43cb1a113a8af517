package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/directory"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// StoreHandler maneja el directorio de tiendas del tenant (protegido).
type StoreHandler struct {
	uc *directory.DirectoryUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *directory.DirectoryUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Create godoc
// @Summary      Crear subtienda (solo tenants MULTI_STORE)
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStoreRequest  true  "name"
// @Success      201   {object}  dto.StoreResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stores [post]
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	rctx := GetRequestContext(c)
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.CreateSubStore(c.Context(), rctx.TenantID, in.Name)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tiendas del tenant (principal primero)
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StoreListResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	rctx := GetRequestContext(c)
	out, err := h.uc.ListStores(c.Context(), rctx.TenantID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar una subtienda (la principal está protegida)
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      204  "desactivada"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [delete]
func (h *StoreHandler) Deactivate(c *fiber.Ctx) error {
	rctx := GetRequestContext(c)
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Deactivate(c.Context(), rctx.TenantID, id); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssignActor godoc
// @Summary      Asignar la tienda por defecto de un actor
// @Tags         stores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignActorRequest  true  "actor_id y store_id"
// @Success      204   "asignado"
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/stores/assignments [post]
func (h *StoreHandler) AssignActor(c *fiber.Ctx) error {
	var in dto.AssignActorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ActorID == "" || in.StoreID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "actor_id y store_id son requeridos"})
	}
	if err := h.uc.AssignActorToStore(c.Context(), in.ActorID, in.StoreID); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnassignActor godoc
// @Summary      Retirar la tienda por defecto de un actor
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        actorId  path  string  true  "ID del actor"
// @Success      204  "retirada"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/assignments/{actorId} [delete]
func (h *StoreHandler) UnassignActor(c *fiber.Ctx) error {
	actorID := c.Params("actorId")
	if actorID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "actorId es requerido"})
	}
	if err := h.uc.UnassignActor(c.Context(), actorID); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

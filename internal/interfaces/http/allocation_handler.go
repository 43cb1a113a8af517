package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
)

// AllocationHandler maneja el ledger de asignaciones por lote (protegido).
type AllocationHandler struct {
	uc *ledger.LedgerUseCase
}

// NewAllocationHandler construye el handler.
func NewAllocationHandler(uc *ledger.LedgerUseCase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

// ReceiveBatch godoc
// @Summary      Recibir un lote nuevo de un producto
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveBatchRequest  true  "item_id y quantity"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *AllocationHandler) ReceiveBatch(c *fiber.Ctx) error {
	rctx := GetRequestContext(c)
	var in dto.ReceiveBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es requerido"})
	}
	out, err := h.uc.ReceiveBatch(c.Context(), rctx, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Allocate godoc
// @Summary      Asignar unidades de un lote a una tienda
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AllocateRequest  true  "batch_id, store_id, quantity"
// @Success      200   {object}  dto.AllocationResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allocations [post]
func (h *AllocationHandler) Allocate(c *fiber.Ctx) error {
	rctx := GetRequestContext(c)
	var in dto.AllocateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BatchID == "" || in.StoreID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batch_id y store_id son requeridos"})
	}
	out, err := h.uc.Allocate(c.Context(), rctx, in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

// Transfer godoc
// @Summary      Transferir unidades asignadas entre tiendas del tenant
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "batch_id, from_store_id, to_store_id, quantity"
// @Success      204   "transferido"
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allocations/transfer [post]
func (h *AllocationHandler) Transfer(c *fiber.Ctx) error {
	rctx := GetRequestContext(c)
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BatchID == "" || in.FromStoreID == "" || in.ToStoreID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batch_id, from_store_id y to_store_id son requeridos"})
	}
	if err := h.uc.Transfer(c.Context(), rctx, in); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Consume godoc
// @Summary      Consumir unidades asignadas (venta/reserva) en una tienda
// @Tags         allocations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRequest  true  "batch_id, store_id, quantity"
// @Success      204   "consumido"
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/allocations/consume [post]
func (h *AllocationHandler) Consume(c *fiber.Ctx) error {
	rctx := GetRequestContext(c)
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BatchID == "" || in.StoreID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "batch_id y store_id son requeridos"})
	}
	if err := h.uc.Consume(c.Context(), rctx, in); err != nil {
		return mapDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Available godoc
// @Summary      Disponibilidad de un lote en una tienda
// @Tags         allocations
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  true  "ID de la tienda"
// @Param        batch_id  query  string  true  "ID del lote"
// @Success      200  {object}  dto.AvailableQuantityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/allocations/available [get]
func (h *AllocationHandler) Available(c *fiber.Ctx) error {
	rctx := GetRequestContext(c)
	storeID := c.Query("store_id")
	batchID := c.Query("batch_id")
	if storeID == "" || batchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "store_id y batch_id son requeridos"})
	}
	qty, err := h.uc.AvailableQuantity(c.Context(), rctx, storeID, batchID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.AvailableQuantityResponse{BatchID: batchID, StoreID: storeID, Quantity: qty})
}

// ListByStore godoc
// @Summary      Listar asignaciones de una tienda
// @Tags         allocations
// @Security     Bearer
// @Produce      json
// @Param        store_id  query  string  true  "ID de la tienda"
// @Success      200  {object}  dto.AllocationListResponse
// @Router       /api/allocations [get]
func (h *AllocationHandler) ListByStore(c *fiber.Ctx) error {
	rctx := GetRequestContext(c)
	storeID := c.Query("store_id")
	if storeID == "" {
		storeID = rctx.StoreID
	}
	if storeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "store_id es requerido"})
	}
	out, err := h.uc.ListAllocations(c.Context(), rctx, storeID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(out)
}

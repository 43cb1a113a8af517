package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// mapDomainError traduce errores de dominio a respuestas HTTP tipadas.
// Los errores no reconocidos se tratan como falla de infraestructura (503):
// el estado persistido sigue consistente, el cliente puede reintentar.
func mapDomainError(c *fiber.Ctx, err error) error {
	type mapping struct {
		sentinel error
		status   int
		code     string
	}
	mappings := []mapping{
		{domain.ErrUnauthenticated, fiber.StatusUnauthorized, "UNAUTHENTICATED"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrStoreTenantMismatch, fiber.StatusForbidden, "STORE_TENANT_MISMATCH"},
		{domain.ErrNoStoreAssigned, fiber.StatusForbidden, "NO_STORE_ASSIGNED"},
		{domain.ErrPermissionDenied, fiber.StatusForbidden, "PERMISSION_DENIED"},
		{domain.ErrCrossTenantAssignment, fiber.StatusForbidden, "CROSS_TENANT_ASSIGNMENT"},
		{domain.ErrCrossTenantAccess, fiber.StatusForbidden, "CROSS_TENANT_ACCESS"},
		{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{domain.ErrPolicyViolation, fiber.StatusConflict, "POLICY_VIOLATION"},
		{domain.ErrDuplicateMainStore, fiber.StatusConflict, "DUPLICATE_MAIN_STORE"},
		{domain.ErrDuplicateStoreName, fiber.StatusConflict, "DUPLICATE_STORE_NAME"},
		{domain.ErrMainStoreProtected, fiber.StatusConflict, "MAIN_STORE_PROTECTED"},
		{domain.ErrInsufficientBatchQuantity, fiber.StatusConflict, "INSUFFICIENT_BATCH_QUANTITY"},
		{domain.ErrInsufficientAllocation, fiber.StatusConflict, "INSUFFICIENT_ALLOCATION"},
		{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_ALREADY_EXISTS"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	}
	for _, m := range mappings {
		if errors.Is(err, m.sentinel) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.sentinel.Error()})
		}
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "error de almacenamiento, reintente"})
}

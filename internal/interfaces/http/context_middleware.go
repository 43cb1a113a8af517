package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/resolver"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Locals key para el RequestContext resuelto en Fiber.
const LocalRequestContext = "request_context"

// ContextMiddleware valida el Bearer Token y resuelve el contexto completo de la
// petición (tenant, tienda, actor) vía el resolver. El contexto se resuelve una
// sola vez por petición y queda en c.Locals; los handlers no vuelven a resolver.
// operation es el nombre de la operación del grupo de rutas (decide exenciones).
func ContextMiddleware(res *resolver.Resolver, operation string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}

		rctx, err := res.Resolve(c.Context(), tokenString, operation)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHENTICATED", Message: "token inválido o expirado"})
			case errors.Is(err, domain.ErrStoreTenantMismatch):
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "STORE_TENANT_MISMATCH", Message: "la tienda de la credencial no pertenece al tenant"})
			case errors.Is(err, domain.ErrNoStoreAssigned):
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NO_STORE_ASSIGNED", Message: "el usuario no tiene tienda asignada"})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "no se pudo resolver el contexto"})
		}
		c.Locals(LocalRequestContext, rctx)
		return c.Next()
	}
}

// GetRequestContext devuelve el contexto resuelto (después del ContextMiddleware).
func GetRequestContext(c *fiber.Ctx) entity.RequestContext {
	v := c.Locals(LocalRequestContext)
	if v == nil {
		return entity.RequestContext{}
	}
	rctx, _ := v.(entity.RequestContext)
	return rctx
}

// RequireRole corta con 403 si el rol del contexto no está en la lista.
// Aplicar después de ContextMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		rctx := GetRequestContext(c)
		if !allowed[rctx.Role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PERMISSION_DENIED", Message: "rol sin permiso para esta operación"})
		}
		return c.Next()
	}
}

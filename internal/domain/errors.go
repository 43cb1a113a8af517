package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Agrupados por clase: autenticación/contexto, política, invariantes y permisos.
// Ninguno es fatal para el proceso: los handlers los traducen a respuestas tipadas.

// Autenticación / contexto — recuperables re-autenticando o re-seleccionando tienda.
var (
	ErrUnauthenticated     = errors.New("no autenticado")
	ErrStoreTenantMismatch = errors.New("la tienda no pertenece al tenant")
	ErrNoStoreAssigned     = errors.New("el usuario no tiene tienda asignada")
)

// Política — rechazan la petición; reintentar sin cambiar la entrada no sirve.
var (
	ErrPolicyViolation       = errors.New("la política del tenant no permite más tiendas")
	ErrDuplicateMainStore    = errors.New("el tenant ya tiene tienda principal")
	ErrDuplicateStoreName    = errors.New("ya existe una tienda con ese nombre")
	ErrMainStoreProtected    = errors.New("la tienda principal no puede desactivarse")
	ErrCrossTenantAssignment = errors.New("la tienda pertenece a otro tenant")
	ErrCrossTenantAccess     = errors.New("acceso a recursos de otro tenant")
)

// Invariantes del ledger — nunca dejan estado persistido inconsistente.
var (
	ErrInsufficientBatchQuantity = errors.New("cantidad insuficiente en el lote")
	ErrInsufficientAllocation    = errors.New("asignación insuficiente en la tienda")
	ErrInvalidQuantity           = errors.New("cantidad inválida")
)

// Permisos.
var (
	ErrPermissionDenied = errors.New("permiso denegado")
)

// Genéricos.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicate          = errors.New("el recurso ya existe")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

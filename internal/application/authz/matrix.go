package authz

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Acciones sobre el sujeto "Store" que evalúa la matriz.
const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"

	SubjectStore = "Store"
)

// Matrix evalúa la capacidad (rol, acción, sujeto) que el ledger consulta antes
// de cada mutación. Es el colaborador de permisos del sistema: aquí una matriz
// estática en memoria; el puerto admite implementaciones externas.
type Matrix struct{}

// New construye la matriz de permisos.
func New() Matrix {
	return Matrix{}
}

// perms por rol sobre el sujeto Store.
// owner/admin: todo. bodeguero: lectura y escritura de stock. vendedor: solo lectura
// (las ventas entran por el flujo de consumo con rol bodeguero o superior).
var perms = map[string]map[string]bool{
	entity.RoleOwner:     {ActionRead: true, ActionWrite: true, ActionDelete: true},
	entity.RoleAdmin:     {ActionRead: true, ActionWrite: true, ActionDelete: true},
	entity.RoleBodeguero: {ActionRead: true, ActionWrite: true},
	entity.RoleVendedor:  {ActionRead: true},
}

// Allowed responde si el rol tiene la capacidad pedida sobre el sujeto.
func (Matrix) Allowed(_ context.Context, role, action, subject string) (bool, error) {
	if subject != SubjectStore {
		return false, nil
	}
	return perms[role][action], nil
}

package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// AssignmentRepository define el puerto para la tienda por defecto de cada actor.
type AssignmentRepository interface {
	// Upsert crea o reemplaza la asignación del actor (una sola tienda por actor).
	Upsert(assignment *entity.StoreAssignment) error
	// ResolveDefault devuelve la tienda por defecto del actor bajo el tenant dado,
	// o nil si no tiene asignación, la tienda asignada no pertenece al tenant
	// o fue desactivada.
	ResolveDefault(actorID, tenantID string) (*entity.Store, error)
	// Delete retira la asignación del actor; sin asignación previa no es error.
	Delete(actorID string) error
}

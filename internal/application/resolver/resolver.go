package resolver

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/idcodec"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// Operaciones exentas de tienda resuelta: reciben contexto con StoreID vacío
// en vez de fallar (endpoints de auth, alta de tenant, health).
var defaultExempt = map[string]bool{
	"health":        true,
	"auth.login":    true,
	"auth.register": true,
	"auth.select":   true,
	"tenant.create": true,
}

// Resolver construye el RequestContext de cada petición: verifica la credencial,
// descifra los claims de tenant/tienda y aplica la cadena de fallback (tienda por
// defecto del actor, o la principal para roles de tenant completo).
// Solo lee del directorio; nunca muta estado. Toda falla es un error tipado de
// dominio, jamás un fallo fatal: el caller decide re-autenticar o re-seleccionar.
type Resolver struct {
	secret         string
	codec          *idcodec.Codec
	storeRepo      repository.StoreRepository
	assignmentRepo repository.AssignmentRepository
	exempt         map[string]bool
}

// New construye el resolver con el set de operaciones exentas por defecto.
func New(secret string, codec *idcodec.Codec, storeRepo repository.StoreRepository, assignmentRepo repository.AssignmentRepository) *Resolver {
	return &Resolver{
		secret:         secret,
		codec:          codec,
		storeRepo:      storeRepo,
		assignmentRepo: assignmentRepo,
		exempt:         defaultExempt,
	}
}

// IsExempt indica si la operación no requiere tienda resuelta.
func (r *Resolver) IsExempt(operation string) bool {
	return r.exempt[operation]
}

// Resolve verifica y descifra la credencial y produce el contexto (tenant, tienda, actor).
//
// Algoritmo:
//  1. Parse del JWT; cualquier fallo de firma/expiración → ErrUnauthenticated.
//  2. Descifrado del claim de tenant; fallo → ErrUnauthenticated.
//  3. Con claim de tienda: descifrar y validar que la tienda pertenece al tenant
//     y sigue activa; mismatch o tienda desactivada → ErrStoreTenantMismatch
//     (nunca se sustituye en silencio).
//  4. Sin claim de tienda: tienda por defecto del actor; roles de tenant completo
//     resuelven a la principal. Sin asignación → ErrNoStoreAssigned,
//     salvo operación exenta, que recibe contexto sin tienda.
func (r *Resolver) Resolve(ctx context.Context, credential, operation string) (entity.RequestContext, error) {
	var rctx entity.RequestContext

	claims, err := jwt.Parse(r.secret, credential)
	if err != nil {
		return rctx, domain.ErrUnauthenticated
	}
	tenantID, err := r.codec.Decode(claims.TenantToken)
	if err != nil {
		return rctx, domain.ErrUnauthenticated
	}
	rctx = entity.RequestContext{
		TenantID: tenantID,
		ActorID:  claims.ActorID,
		Role:     claims.Role,
	}

	if claims.StoreToken != "" {
		storeID, err := r.codec.Decode(claims.StoreToken)
		if err != nil {
			return entity.RequestContext{}, domain.ErrUnauthenticated
		}
		store, err := r.storeRepo.GetByID(storeID)
		if err != nil {
			return entity.RequestContext{}, err
		}
		// Una tienda desactivada deja de ser operable: el claim se trata igual
		// que uno que no corresponde al tenant y el caller re-selecciona tienda.
		if store == nil || store.TenantID != tenantID || !store.IsActive {
			return entity.RequestContext{}, domain.ErrStoreTenantMismatch
		}
		rctx.StoreID = store.ID
		return rctx, nil
	}

	// Fallback: sin claim de tienda en la credencial.
	if rctx.TenantWide() {
		// El rol autoriza cualquier tienda; para operaciones que requieren una
		// concreta se resuelve la principal del tenant.
		main, err := r.storeRepo.GetMainByTenant(tenantID)
		if err != nil {
			return entity.RequestContext{}, err
		}
		if main == nil {
			if r.IsExempt(operation) {
				return rctx, nil
			}
			return entity.RequestContext{}, domain.ErrNoStoreAssigned
		}
		rctx.StoreID = main.ID
		return rctx, nil
	}

	assigned, err := r.assignmentRepo.ResolveDefault(claims.ActorID, tenantID)
	if err != nil {
		return entity.RequestContext{}, err
	}
	if assigned == nil {
		if r.IsExempt(operation) {
			return rctx, nil
		}
		return entity.RequestContext{}, domain.ErrNoStoreAssigned
	}
	rctx.StoreID = assigned.ID
	return rctx, nil
}

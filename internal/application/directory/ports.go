package directory

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que tenant y tienda principal se crean como unidad:
// no existe ventana con un tenant sin tienda principal (ni con dos).
// Lo implementa el mismo runner que el del ledger (método aparte, como RunBilling en facturación).
type TxRunner interface {
	RunDirectory(ctx context.Context, fn func(
		tenantRepo repository.TenantRepository,
		storeRepo repository.StoreRepository,
	) error) error
}

package ledger

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Junto con el bloqueo de la fila del lote (GetForUpdate) garantiza
// que la secuencia verificar-invariante-y-mutar del ledger es atómica y serializada
// por lote: operaciones sobre lotes distintos avanzan en paralelo.
// Cancelación o fallo durante fn hace rollback completo: nunca hay mutación parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		allocRepo repository.AllocationRepository,
	) error) error
}

// PermissionChecker es el colaborador externo de permisos: una sola consulta
// booleana (rol, acción, sujeto) antes de cada mutación del ledger.
// Lo implementa authz.Matrix; la interfaz evita acoplar el ledger a la matriz.
type PermissionChecker interface {
	Allowed(ctx context.Context, role, action, subject string) (bool, error)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allocation representa la partición de un lote asignada a una tienda.
// Existe exactamente una fila por par (lote, tienda): re-asignar incrementa
// las cantidades en vez de crear un duplicado.
//
// AllocatedQuantity es acumulativo (unidades alguna vez asignadas a la tienda);
// puede superar históricamente el RemainingQuantity del lote por transferencias.
// RemainingQuantity son las unidades asignadas aún disponibles para venta en la tienda.
// Invariante del ledger: Σ RemainingQuantity de las filas de un lote ≤ RemainingQuantity del lote,
// y RemainingQuantity ≤ AllocatedQuantity en cada fila.
type Allocation struct {
	BatchID           string
	StoreID           string
	AllocatedQuantity decimal.Decimal
	RemainingQuantity decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

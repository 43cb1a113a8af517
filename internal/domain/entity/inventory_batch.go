package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBatch representa un lote físico de un producto (evento de recepción/fabricación).
// RemainingQuantity son las unidades aún existentes (vendidas no): solo decrece, vía consumo.
// La asignación a tiendas NO descuenta de aquí: solo particiona lógicamente el lote.
type InventoryBatch struct {
	ID                string
	TenantID          string
	ItemID            string
	InitialQuantity   decimal.Decimal
	RemainingQuantity decimal.Decimal
	ReceivedAt        time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

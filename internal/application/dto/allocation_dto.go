package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest alta de producto (pertenece a la tienda principal del tenant).
type CreateItemRequest struct {
	SKU  string `json:"sku" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// ItemResponse producto serializado.
type ItemResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemListResponse listado de productos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ReceiveBatchRequest recepción de un lote nuevo.
type ReceiveBatchRequest struct {
	ItemID   string          `json:"item_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// BatchResponse lote serializado.
type BatchResponse struct {
	ID                string          `json:"id"`
	TenantID          string          `json:"tenant_id"`
	ItemID            string          `json:"item_id"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	ReceivedAt        time.Time       `json:"received_at"`
}

// AllocateRequest asigna unidades de un lote a una tienda.
type AllocateRequest struct {
	BatchID  string          `json:"batch_id" validate:"required"`
	StoreID  string          `json:"store_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// TransferRequest mueve unidades asignadas entre tiendas del mismo tenant.
type TransferRequest struct {
	BatchID     string          `json:"batch_id" validate:"required"`
	FromStoreID string          `json:"from_store_id" validate:"required"`
	ToStoreID   string          `json:"to_store_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
}

// ConsumeRequest descuenta unidades vendidas/reservadas en una tienda.
type ConsumeRequest struct {
	BatchID  string          `json:"batch_id" validate:"required"`
	StoreID  string          `json:"store_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// AllocationResponse fila de asignación serializada.
type AllocationResponse struct {
	BatchID           string          `json:"batch_id"`
	StoreID           string          `json:"store_id"`
	AllocatedQuantity decimal.Decimal `json:"allocated_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// AllocationListResponse asignaciones de una tienda.
type AllocationListResponse struct {
	Items []AllocationResponse `json:"items"`
}

// AvailableQuantityResponse disponibilidad de un lote en una tienda.
type AvailableQuantityResponse struct {
	BatchID  string          `json:"batch_id"`
	StoreID  string          `json:"store_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

package dto

import "time"

// CreateTenantRequest alta de tenant; la tienda principal se crea en la misma transacción.
type CreateTenantRequest struct {
	Name          string `json:"name" validate:"required"`
	StorePolicy   string `json:"store_policy"` // SINGLE_STORE (default) | MULTI_STORE
	MainStoreName string `json:"main_store_name"`
}

// TenantResponse tenant con su tienda principal.
type TenantResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	StorePolicy string         `json:"store_policy"`
	Status      string         `json:"status"`
	MainStore   *StoreResponse `json:"main_store,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

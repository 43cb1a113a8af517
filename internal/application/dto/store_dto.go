package dto

import "time"

// CreateStoreRequest alta de subtienda (solo tenants MULTI_STORE).
type CreateStoreRequest struct {
	Name string `json:"name" validate:"required"`
}

// AssignActorRequest asigna la tienda por defecto de un actor.
type AssignActorRequest struct {
	ActorID string `json:"actor_id" validate:"required"`
	StoreID string `json:"store_id" validate:"required"`
}

// StoreResponse tienda serializada.
type StoreResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Name      string    `json:"name"`
	IsMain    bool      `json:"is_main"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreListResponse listado de tiendas (orden de creación, principal primero).
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
}

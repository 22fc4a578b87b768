package dto

import (
	"encoding/json"
	"time"
)

// CreateTiendaRequest entrada para crear una tienda. Estado vacío = "activo".
type CreateTiendaRequest struct {
	Nombre string `json:"nombre" validate:"required,max=120"`
	Estado string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// UpdateTiendaRequest entrada para actualizar una tienda; campos nil no se tocan.
type UpdateTiendaRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,max=120"`
	Estado *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// UpsertTiendaRequest crea la tienda si no trae id, o la actualiza si lo trae.
type UpsertTiendaRequest struct {
	ID     string `json:"id" validate:"omitempty,uuid"`
	Nombre string `json:"nombre" validate:"required,max=120"`
	Estado string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// TiendaResponse salida de una tienda.
type TiendaResponse struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Estado    string          `json:"estado"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Raw       json.RawMessage `json:"raw,omitempty"`
}

// TiendaListResponse lista paginada de tiendas.
type TiendaListResponse struct {
	Items []TiendaResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// TiendaListQuery parámetros de listado.
type TiendaListQuery struct {
	Estado string `query:"estado" validate:"omitempty,oneof=activo inactivo"`
	Search string `query:"search"`
	SortBy string `query:"sort_by" validate:"omitempty,oneof=nombre created_at"`
	Order  string `query:"order" validate:"omitempty,oneof=asc desc"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

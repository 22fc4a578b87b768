package repository

import (
	"context"

	"github.com/magicstars/ops-api/internal/domain/entity"
)

// TiendaFilter criterios de listado de tiendas.
type TiendaFilter struct {
	Estado string // vacío = todas
	Search string // coincidencia parcial, sin distinguir mayúsculas
	SortBy string // "nombre" | "created_at"
	Desc   bool
	Limit  int
	Offset int
}

// TiendaRepository define el puerto de persistencia para Tienda (DIP).
type TiendaRepository interface {
	Create(ctx context.Context, tienda *entity.Tienda) error
	GetByID(ctx context.Context, id string) (*entity.Tienda, error)
	// FindActiveByNombre busca una tienda activa por nombre sin distinguir mayúsculas.
	FindActiveByNombre(ctx context.Context, nombre string) (*entity.Tienda, error)
	Update(ctx context.Context, tienda *entity.Tienda) error
	List(ctx context.Context, f TiendaFilter) ([]*entity.Tienda, int, error)
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"github.com/magicstars/ops-api/internal/domain/entity"
)

// InventarioFilter criterios de listado del inventario.
type InventarioFilter struct {
	Tienda string
	Search string
	SortBy string // "producto" | "cantidad"
	Desc   bool
	Limit  int // 0 = sin límite
	Offset int
}

// InventarioRepository define el puerto de lectura del inventario.
type InventarioRepository interface {
	List(ctx context.Context, f InventarioFilter) ([]*entity.ProductoInventario, int, error)
	ListTiendas(ctx context.Context) ([]string, error)
}

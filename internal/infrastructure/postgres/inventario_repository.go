package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/internal/domain/repository"
)

var _ repository.InventarioRepository = (*InventarioRepo)(nil)

var inventarioSortColumns = map[string]string{
	"producto": "producto",
	"cantidad": "cantidad",
	"idx":      "idx",
}

// InventarioRepo lectura de la tabla inventario. Las filas se leen sin tipo y se
// mapean con MapProductoInventario.
type InventarioRepo struct {
	q Querier
}

// NewInventarioRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventarioRepository(q Querier) *InventarioRepo {
	return &InventarioRepo{q: q}
}

// List devuelve la página pedida y el total de filas que cumplen el filtro.
func (r *InventarioRepo) List(ctx context.Context, f repository.InventarioFilter) ([]*entity.ProductoInventario, int, error) {
	var w whereBuilder
	if f.Tienda != "" {
		w.add("lower(tienda) = lower(?)", f.Tienda)
	}
	if f.Search != "" {
		w.add(`producto ILIKE ? ESCAPE '\'`, likePattern(f.Search))
	}
	where := w.sql()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM inventario`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventario: %w", err)
	}

	query := `SELECT * FROM inventario` + where +
		orderBy(f.SortBy, f.Desc, inventarioSortColumns, "producto") +
		w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventario: %w", err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, 0, fmt.Errorf("scan inventario: %w", err)
	}

	list := make([]*entity.ProductoInventario, 0, len(maps))
	for _, m := range maps {
		list = append(list, MapProductoInventario(m))
	}
	return list, total, nil
}

// ListTiendas devuelve los nombres de tienda distintos presentes en el inventario.
func (r *InventarioRepo) ListTiendas(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT tienda FROM inventario
		WHERE tienda IS NOT NULL AND btrim(tienda) <> ''
		ORDER BY tienda`)
	if err != nil {
		return nil, fmt.Errorf("list tiendas de inventario: %w", err)
	}
	tiendas, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan tiendas de inventario: %w", err)
	}
	return tiendas, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/magicstars/ops-api/internal/domain"
	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/internal/domain/repository"
)

var _ repository.TiendaRepository = (*TiendaRepo)(nil)

// Columnas de tiendas; raw es la fila completa como JSON.
const tiendaColumns = `t.id::text, t.nombre, COALESCE(t.estado, 'activo'), t.created_at, t.updated_at, to_jsonb(t)`

var tiendaSortColumns = map[string]string{
	"nombre":     "t.nombre",
	"created_at": "t.created_at",
}

// TiendaRepo implementación del puerto TiendaRepository sobre la tabla tiendas de Supabase.
type TiendaRepo struct {
	q Querier
}

// NewTiendaRepository construye el adaptador. Acepta pool o tx (Querier).
func NewTiendaRepository(q Querier) *TiendaRepo {
	return &TiendaRepo{q: q}
}

// Create inserta la tienda. La unicidad real la garantiza el índice único parcial
// tiendas_nombre_activo_uniq (lower(nombre) WHERE estado = 'activo').
func (r *TiendaRepo) Create(ctx context.Context, t *entity.Tienda) error {
	query := `
		INSERT INTO tiendas (id, nombre, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, t.ID, t.Nombre, t.Estado, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert tienda: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID; (nil, nil) si no existe.
func (r *TiendaRepo) GetByID(ctx context.Context, id string) (*entity.Tienda, error) {
	query := `SELECT ` + tiendaColumns + ` FROM tiendas t WHERE t.id::text = $1`
	t, err := scanTienda(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tienda: %w", err)
	}
	return t, nil
}

// FindActiveByNombre busca una tienda activa por nombre sin distinguir mayúsculas.
func (r *TiendaRepo) FindActiveByNombre(ctx context.Context, nombre string) (*entity.Tienda, error) {
	query := `SELECT ` + tiendaColumns + ` FROM tiendas t
		WHERE lower(t.nombre) = lower($1) AND COALESCE(t.estado, 'activo') = 'activo'
		LIMIT 1`
	t, err := scanTienda(r.q.QueryRow(ctx, query, nombre))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find tienda by nombre: %w", err)
	}
	return t, nil
}

// Update actualiza nombre y estado. domain.ErrNotFound si el id no existe.
func (r *TiendaRepo) Update(ctx context.Context, t *entity.Tienda) error {
	query := `UPDATE tiendas SET nombre = $2, estado = $3, updated_at = $4 WHERE id::text = $1`
	cmd, err := r.q.Exec(ctx, query, t.ID, t.Nombre, t.Estado, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update tienda: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve la página pedida y el total de filas que cumplen el filtro.
func (r *TiendaRepo) List(ctx context.Context, f repository.TiendaFilter) ([]*entity.Tienda, int, error) {
	var w whereBuilder
	if f.Estado != "" {
		w.add("COALESCE(t.estado, 'activo') = ?", f.Estado)
	}
	if f.Search != "" {
		w.add(`t.nombre ILIKE ? ESCAPE '\'`, likePattern(f.Search))
	}
	where := w.sql()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM tiendas t`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tiendas: %w", err)
	}

	query := `SELECT ` + tiendaColumns + ` FROM tiendas t` + where +
		orderBy(f.SortBy, f.Desc, tiendaSortColumns, "nombre") +
		w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tiendas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tienda
	for rows.Next() {
		t, err := scanTienda(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan tienda: %w", err)
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// Delete elimina una tienda por ID. domain.ErrNotFound si no existe.
func (r *TiendaRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM tiendas WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tienda: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTienda(row pgx.Row) (*entity.Tienda, error) {
	var t entity.Tienda
	var raw []byte
	if err := row.Scan(&t.ID, &t.Nombre, &t.Estado, &t.CreatedAt, &t.UpdatedAt, &raw); err != nil {
		return nil, err
	}
	t.Raw = raw
	return &t, nil
}

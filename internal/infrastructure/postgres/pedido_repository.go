package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

const pedidoColumns = `
	id_pedido::text, fecha, COALESCE(cliente, ''), COALESCE(tienda, ''),
	COALESCE(provincia, ''), COALESCE(canton, ''), COALESCE(distrito, ''),
	COALESCE(productos, ''), COALESCE(valor_total, 0), COALESCE(estado, 'PENDIENTE'),
	COALESCE(mensajero_asignado, ''), COALESCE(mensajero_concretado, '')`

// PedidoRepo lectura de la tabla pedidos (la escritura la hace el servidor de automatización).
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador. Acepta pool o tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

// List devuelve los pedidos que cumplen el filtro, del más reciente al más antiguo.
func (r *PedidoRepo) List(ctx context.Context, f repository.PedidoFilter) ([]*entity.Pedido, int, error) {
	var w whereBuilder
	if !f.Fecha.IsZero() {
		w.add("fecha::date = ?::date", f.Fecha.Format("2006-01-02"))
	}
	if f.Mensajero != "" {
		w.add("(lower(mensajero_asignado) = lower(?) OR lower(mensajero_concretado) = lower(?))", f.Mensajero)
	}
	if f.Estado != "" {
		w.add("upper(estado) = upper(?)", f.Estado)
	}
	if f.Tienda != "" {
		w.add("lower(tienda) = lower(?)", f.Tienda)
	}
	where := w.sql()

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM pedidos`+where, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pedidos: %w", err)
	}

	query := `SELECT ` + pedidoColumns + ` FROM pedidos` + where +
		` ORDER BY fecha DESC, id_pedido` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Pedido
	for rows.Next() {
		p, err := scanPedido(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// GetByID obtiene un pedido; (nil, nil) si no existe.
func (r *PedidoRepo) GetByID(ctx context.Context, idPedido string) (*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumns + ` FROM pedidos WHERE id_pedido::text = $1`
	p, err := scanPedido(r.q.QueryRow(ctx, query, idPedido))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return p, nil
}

func scanPedido(row pgx.Row) (*entity.Pedido, error) {
	var p entity.Pedido
	err := row.Scan(
		&p.IDPedido, &p.Fecha, &p.Cliente, &p.Tienda,
		&p.Provincia, &p.Canton, &p.Distrito,
		&p.Productos, &p.ValorTotal, &p.Estado,
		&p.MensajeroAsignado, &p.MensajeroConcretado,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

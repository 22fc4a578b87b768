package repository

import (
	"context"
	"time"

	"github.com/magicstars/ops-api/internal/domain/entity"
)

// PedidoFilter criterios de listado de pedidos. Fecha cero = sin filtro de día.
type PedidoFilter struct {
	Fecha     time.Time
	Mensajero string // asignado o concretado
	Estado    string
	Tienda    string
	Limit     int
	Offset    int
}

// PedidoRepository define el puerto de lectura de pedidos.
type PedidoRepository interface {
	List(ctx context.Context, f PedidoFilter) ([]*entity.Pedido, int, error)
	GetByID(ctx context.Context, idPedido string) (*entity.Pedido, error)
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido tal como los escribe el servidor de automatización.
const (
	EstadoPedidoPendiente  = "PENDIENTE"
	EstadoPedidoEnRuta     = "EN RUTA"
	EstadoPedidoEntregado  = "ENTREGADO"
	EstadoPedidoDevolucion = "DEVOLUCION"
	EstadoPedidoReagendado = "REAGENDADO"
	EstadoPedidoCancelado  = "CANCELADO"
)

// EstadosPedido lista de estados admitidos al actualizar un pedido.
var EstadosPedido = []string{
	EstadoPedidoPendiente,
	EstadoPedidoEnRuta,
	EstadoPedidoEntregado,
	EstadoPedidoDevolucion,
	EstadoPedidoReagendado,
	EstadoPedidoCancelado,
}

// Pedido proyección de solo lectura de un pedido del día.
// Las mutaciones se hacen en el servidor de automatización, nunca desde aquí.
type Pedido struct {
	IDPedido            string
	Fecha               time.Time
	Cliente             string
	Tienda              string
	Provincia           string
	Canton              string
	Distrito            string
	Productos           string
	ValorTotal          decimal.Decimal
	Estado              string
	MensajeroAsignado   string
	MensajeroConcretado string
}

// Mensajero devuelve quien concretó el pedido o, si aún no se concreta, el asignado.
func (p *Pedido) Mensajero() string {
	if p.MensajeroConcretado != "" {
		return p.MensajeroConcretado
	}
	return p.MensajeroAsignado
}

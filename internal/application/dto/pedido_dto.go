package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PedidoResponse salida de un pedido con el tipo de envío resuelto por zona.
type PedidoResponse struct {
	IDPedido            string          `json:"id_pedido"`
	Fecha               time.Time       `json:"fecha"`
	Cliente             string          `json:"cliente"`
	Tienda              string          `json:"tienda"`
	Provincia           string          `json:"provincia"`
	Canton              string          `json:"canton"`
	Distrito            string          `json:"distrito"`
	Productos           string          `json:"productos"`
	ValorTotal          decimal.Decimal `json:"valor_total"`
	Estado              string          `json:"estado"`
	MensajeroAsignado   string          `json:"mensajero_asignado"`
	MensajeroConcretado string          `json:"mensajero_concretado"`
	TipoEnvio           *string         `json:"tipo_envio"`
}

// PedidoListResponse lista paginada de pedidos.
type PedidoListResponse struct {
	Items []PedidoResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// PedidoListQuery parámetros de listado. Fecha en formato YYYY-MM-DD.
type PedidoListQuery struct {
	Fecha     string `query:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Mensajero string `query:"mensajero"`
	Estado    string `query:"estado"`
	Tienda    string `query:"tienda"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

// ResumenMensajeroDTO totales del día de un mensajero.
type ResumenMensajeroDTO struct {
	Mensajero      string          `json:"mensajero"`
	Total          int             `json:"total"`
	PorEstado      map[string]int  `json:"por_estado"`
	ValorTotal     decimal.Decimal `json:"valor_total"`
	ValorEntregado decimal.Decimal `json:"valor_entregado"`
}

// ResumenDiaResponse resumen de pedidos del día agrupado por mensajero.
type ResumenDiaResponse struct {
	Fecha          string                `json:"fecha"`
	TotalPedidos   int                   `json:"total_pedidos"`
	ValorTotal     decimal.Decimal       `json:"valor_total"`
	ValorEntregado decimal.Decimal       `json:"valor_entregado"`
	SinAsignar     int                   `json:"sin_asignar"`
	Mensajeros     []ResumenMensajeroDTO `json:"mensajeros"`
}

// ActualizarEstadoPedidoRequest cambio de estado enviado al servidor de automatización.
type ActualizarEstadoPedidoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=PENDIENTE 'EN RUTA' ENTREGADO DEVOLUCION REAGENDADO CANCELADO"`
	Notas  string `json:"notas" validate:"max=500"`
}

// ActualizarEstadoPayload cuerpo que recibe el webhook actualizar-pedido.
type ActualizarEstadoPayload struct {
	IDPedido  string `json:"id_pedido"`
	Estado    string `json:"estado"`
	Mensajero string `json:"mensajero"`
	Notas     string `json:"notas,omitempty"`
	UsuarioID string `json:"usuario_id"`
}

package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/application/usecase"
	"github.com/magicstars/ops-api/internal/domain"
	"github.com/magicstars/ops-api/internal/domain/entity"
)

// PedidoHandler maneja lectura de pedidos, resumen del día, hoja de ruta y cambios de estado.
type PedidoHandler struct {
	uc    *usecase.PedidoUseCase
	relay *SyncHandler
}

// NewPedidoHandler construye el handler. relay da la misma semántica de reenvío que /api/sync.
func NewPedidoHandler(uc *usecase.PedidoUseCase, relay *SyncHandler) *PedidoHandler {
	return &PedidoHandler{uc: uc, relay: relay}
}

// List godoc
// @Summary      Listar pedidos
// @Description  Un mensajero solo ve los pedidos asignados a él. Cada pedido incluye tipo_envio (null si la zona no existe).
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        fecha      query  string  false  "YYYY-MM-DD"
// @Param        mensajero  query  string  false  "Mensajero"
// @Param        estado     query  string  false  "Estado"
// @Param        tienda     query  string  false  "Tienda"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200        {object}  dto.PedidoListResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	var q dto.PedidoListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	return c.JSON(h.uc.List(c.UserContext(), q, actorFrom(c)))
}

// Resumen godoc
// @Summary      Resumen del día por mensajero
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        fecha  query  string  false  "YYYY-MM-DD (hoy por defecto)"
// @Success      200    {object}  dto.ResumenDiaResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/pedidos/resumen [get]
func (h *PedidoHandler) Resumen(c *fiber.Ctx) error {
	fecha, err := usecase.ParseFecha(c.Query("fecha"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(h.uc.Resumen(c.UserContext(), fecha))
}

// HojaRuta godoc
// @Summary      Hoja de ruta en PDF
// @Description  Un mensajero solo puede descargar su propia hoja de ruta.
// @Tags         pedidos
// @Security     Bearer
// @Produce      application/pdf
// @Param        mensajero  query  string  false  "Mensajero (admin y líder)"
// @Param        fecha      query  string  false  "YYYY-MM-DD (hoy por defecto)"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/hoja-ruta [get]
func (h *PedidoHandler) HojaRuta(c *fiber.Ctx) error {
	fecha, err := usecase.ParseFecha(c.Query("fecha"))
	if err != nil {
		return writeDomainError(c, err)
	}
	mensajero := strings.TrimSpace(c.Query("mensajero"))
	if GetRole(c) == entity.RoleMensajero || mensajero == "" {
		mensajero = GetMensajero(c)
	}
	if mensajero == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mensajero es requerido"})
	}

	doc, err := h.uc.HojaRuta(c.UserContext(), mensajero, fecha)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el mensajero no tiene pedidos ese día"})
		}
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="hoja-ruta-%s.pdf"`, fecha.Format("2006-01-02")))
	return c.Send(doc)
}

// ActualizarEstado godoc
// @Summary      Cambiar estado de un pedido
// @Description  Se reenvía al endpoint actualizar-pedido del servidor de automatización.
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                             true  "ID del pedido"
// @Param        body  body  dto.ActualizarEstadoPedidoRequest  true  "Nuevo estado"
// @Success      200   {object}  map[string]interface{}
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ProxyErrorResponse
// @Router       /api/pedidos/{id}/estado [patch]
func (h *PedidoHandler) ActualizarEstado(c *fiber.Ctx) error {
	var in dto.ActualizarEstadoPedidoRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	resp, err := h.uc.ActualizarEstado(c.UserContext(), c.Params("id"), in, actorFrom(c))
	if err != nil {
		if isForwardError(err) {
			return h.relay.writeForwardError(c, ports.EndpointActualizarPedido, err)
		}
		return writeDomainError(c, err)
	}
	return h.relay.writeResponse(c, ports.EndpointActualizarPedido, resp)
}

package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/domain"
	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/internal/domain/repository"
	"github.com/magicstars/ops-api/pkg/logger"
)

const fechaLayout = "2006-01-02"

// ZonaResolver resuelve el tipo de envío de una dirección.
type ZonaResolver interface {
	Resolve(provincia, canton, distrito string) (string, bool)
}

// Actor usuario que ejecuta una acción (tomado del token).
type Actor struct {
	UserID    string
	Role      string
	Mensajero string
}

// sinAlcance indica un mensajero sin nombre: no se le puede asociar ningún pedido.
func (a Actor) sinAlcance() bool {
	return a.Role == entity.RoleMensajero && strings.TrimSpace(a.Mensajero) == ""
}

// PedidoUseCase lectura de pedidos del día, resúmenes, hoja de ruta y cambios de estado
// (que se delegan al servidor de automatización).
type PedidoUseCase struct {
	repo    repository.PedidoRepository
	zonas   ZonaResolver
	webhook ports.WebhookForwarder
	pdf     ports.HojaRutaGenerator
	log     *logger.Logger
}

// NewPedidoUseCase construye el caso de uso.
func NewPedidoUseCase(
	repo repository.PedidoRepository,
	zonas ZonaResolver,
	webhook ports.WebhookForwarder,
	pdf ports.HojaRutaGenerator,
	log *logger.Logger,
) *PedidoUseCase {
	return &PedidoUseCase{repo: repo, zonas: zonas, webhook: webhook, pdf: pdf, log: log.Named("pedidos")}
}

// ParseFecha interpreta YYYY-MM-DD; vacío = hoy.
func ParseFecha(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(fechaLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return t, nil
}

// List lista pedidos. Un mensajero solo ve los suyos, sin importar el filtro pedido.
func (uc *PedidoUseCase) List(ctx context.Context, q dto.PedidoListQuery, actor Actor) *dto.PedidoListResponse {
	limit, offset := normalizePage(q.Limit, q.Offset)
	if actor.sinAlcance() {
		uc.log.Warn().Str("user_id", actor.UserID).Msg("mensajero sin nombre; sin pedidos visibles")
		return &dto.PedidoListResponse{
			Items: []dto.PedidoResponse{},
			Page:  dto.PageResponse{Limit: limit, Offset: offset},
		}
	}
	f := repository.PedidoFilter{
		Mensajero: strings.TrimSpace(q.Mensajero),
		Estado:    strings.TrimSpace(q.Estado),
		Tienda:    strings.TrimSpace(q.Tienda),
		Limit:     limit,
		Offset:    offset,
	}
	if q.Fecha != "" {
		if fecha, err := time.Parse(fechaLayout, q.Fecha); err == nil {
			f.Fecha = fecha
		}
	}
	if actor.Role == entity.RoleMensajero {
		f.Mensajero = actor.Mensajero
	}

	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		uc.log.Error().Err(err).Str("mensajero", f.Mensajero).Msg("❌ obtener pedidos")
		list, total = nil, 0
	}

	items := make([]dto.PedidoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, uc.toPedidoResponse(p))
	}
	return &dto.PedidoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
}

// Resumen agrupa los pedidos del día por mensajero (quien concretó o, si no, el asignado).
func (uc *PedidoUseCase) Resumen(ctx context.Context, fecha time.Time) *dto.ResumenDiaResponse {
	out := &dto.ResumenDiaResponse{
		Fecha:          fecha.Format(fechaLayout),
		ValorTotal:     decimal.Zero,
		ValorEntregado: decimal.Zero,
		Mensajeros:     []dto.ResumenMensajeroDTO{},
	}

	list, _, err := uc.repo.List(ctx, repository.PedidoFilter{Fecha: fecha})
	if err != nil {
		uc.log.Error().Err(err).Str("fecha", out.Fecha).Msg("❌ obtener resumen del día")
		return out
	}

	byMensajero := map[string]*dto.ResumenMensajeroDTO{}
	for _, p := range list {
		out.TotalPedidos++
		out.ValorTotal = out.ValorTotal.Add(p.ValorTotal)
		entregado := strings.EqualFold(p.Estado, entity.EstadoPedidoEntregado)
		if entregado {
			out.ValorEntregado = out.ValorEntregado.Add(p.ValorTotal)
		}

		nombre := p.Mensajero()
		if nombre == "" {
			out.SinAsignar++
			continue
		}
		r, ok := byMensajero[nombre]
		if !ok {
			r = &dto.ResumenMensajeroDTO{
				Mensajero:      nombre,
				PorEstado:      map[string]int{},
				ValorTotal:     decimal.Zero,
				ValorEntregado: decimal.Zero,
			}
			byMensajero[nombre] = r
		}
		r.Total++
		r.PorEstado[strings.ToUpper(p.Estado)]++
		r.ValorTotal = r.ValorTotal.Add(p.ValorTotal)
		if entregado {
			r.ValorEntregado = r.ValorEntregado.Add(p.ValorTotal)
		}
	}

	for _, r := range byMensajero {
		out.Mensajeros = append(out.Mensajeros, *r)
	}
	sort.Slice(out.Mensajeros, func(i, j int) bool {
		return out.Mensajeros[i].Mensajero < out.Mensajeros[j].Mensajero
	})
	return out
}

// HojaRuta genera el PDF con los pedidos asignados al mensajero en la fecha.
// domain.ErrNotFound si no tiene pedidos ese día.
func (uc *PedidoUseCase) HojaRuta(ctx context.Context, mensajero string, fecha time.Time) ([]byte, error) {
	mensajero = strings.TrimSpace(mensajero)
	if mensajero == "" {
		return nil, domain.ErrInvalidInput
	}
	list, _, err := uc.repo.List(ctx, repository.PedidoFilter{Fecha: fecha, Mensajero: mensajero})
	if err != nil {
		uc.log.Error().Err(err).Str("mensajero", mensajero).Msg("❌ obtener pedidos para hoja de ruta")
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}

	lineas := make([]ports.HojaRutaLinea, 0, len(list))
	for _, p := range list {
		tipo, _ := uc.zonas.Resolve(p.Provincia, p.Canton, p.Distrito)
		lineas = append(lineas, ports.HojaRutaLinea{Pedido: p, TipoEnvio: tipo})
	}
	doc, err := uc.pdf.GenerateHojaRuta(ctx, mensajero, fecha, lineas)
	if err != nil {
		uc.log.Error().Err(err).Str("mensajero", mensajero).Msg("❌ generar hoja de ruta")
		return nil, err
	}
	return doc, nil
}

// ActualizarEstado reenvía el cambio de estado al servidor de automatización.
// Un mensajero solo puede actualizar pedidos asignados a él.
func (uc *PedidoUseCase) ActualizarEstado(ctx context.Context, idPedido string, in dto.ActualizarEstadoPedidoRequest, actor Actor) (*ports.WebhookResponse, error) {
	if actor.sinAlcance() {
		return nil, domain.ErrForbidden
	}
	pedido, err := uc.repo.GetByID(ctx, idPedido)
	if err != nil {
		uc.log.Error().Err(err).Str("id_pedido", idPedido).Msg("❌ obtener pedido")
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role == entity.RoleMensajero && !strings.EqualFold(pedido.MensajeroAsignado, actor.Mensajero) {
		return nil, domain.ErrForbidden
	}

	mensajero := pedido.MensajeroAsignado
	if actor.Role == entity.RoleMensajero {
		mensajero = actor.Mensajero
	}
	body, err := json.Marshal(dto.ActualizarEstadoPayload{
		IDPedido:  pedido.IDPedido,
		Estado:    in.Estado,
		Mensajero: mensajero,
		Notas:     strings.TrimSpace(in.Notas),
		UsuarioID: actor.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("serializar cambio de estado: %w", err)
	}

	resp, err := uc.webhook.Forward(ctx, ports.EndpointActualizarPedido, body)
	if err != nil {
		if !errors.Is(err, domain.ErrUnknownEndpoint) {
			uc.log.Error().Err(err).Str("id_pedido", idPedido).Msg("❌ actualizar estado de pedido")
		}
		return nil, err
	}
	return resp, nil
}

func (uc *PedidoUseCase) toPedidoResponse(p *entity.Pedido) dto.PedidoResponse {
	out := dto.PedidoResponse{
		IDPedido:            p.IDPedido,
		Fecha:               p.Fecha,
		Cliente:             p.Cliente,
		Tienda:              p.Tienda,
		Provincia:           p.Provincia,
		Canton:              p.Canton,
		Distrito:            p.Distrito,
		Productos:           p.Productos,
		ValorTotal:          p.ValorTotal,
		Estado:              p.Estado,
		MensajeroAsignado:   p.MensajeroAsignado,
		MensajeroConcretado: p.MensajeroConcretado,
	}
	if tipo, ok := uc.zonas.Resolve(p.Provincia, p.Canton, p.Distrito); ok {
		out.TipoEnvio = &tipo
	}
	return out
}

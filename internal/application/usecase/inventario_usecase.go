package usecase

import (
	"context"
	"strings"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/internal/domain/repository"
	"github.com/magicstars/ops-api/pkg/logger"
)

// InventarioUseCase lectura del inventario por tienda. Todas las lecturas priorizan
// disponibilidad: un fallo se registra y se responde con datos vacíos.
type InventarioUseCase struct {
	repo       repository.InventarioRepository
	umbralBajo int
	log        *logger.Logger
}

// NewInventarioUseCase construye el caso de uso. umbralBajo es la cantidad a partir de
// la cual (inclusive) un producto cuenta como stock bajo.
func NewInventarioUseCase(repo repository.InventarioRepository, umbralBajo int, log *logger.Logger) *InventarioUseCase {
	return &InventarioUseCase{repo: repo, umbralBajo: umbralBajo, log: log.Named("inventario")}
}

// List lista el inventario filtrado, ordenado y paginado.
func (uc *InventarioUseCase) List(ctx context.Context, q dto.InventarioListQuery) *dto.InventarioListResponse {
	limit, offset := normalizePage(q.Limit, q.Offset)
	list, total, err := uc.repo.List(ctx, repository.InventarioFilter{
		Tienda: strings.TrimSpace(q.Tienda),
		Search: strings.TrimSpace(q.Search),
		SortBy: q.SortBy,
		Desc:   q.Order == "desc",
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		uc.log.Error().Err(err).Str("tienda", q.Tienda).Msg("❌ obtener inventario")
		list, total = nil, 0
	}

	items := make([]dto.ProductoInventarioResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductoInventarioResponse(p))
	}
	return &dto.InventarioListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}
}

// Stats calcula las tarjetas de resumen sobre todo el inventario de la tienda (o de todas).
func (uc *InventarioUseCase) Stats(ctx context.Context, tienda string) *dto.InventarioStatsResponse {
	tienda = strings.TrimSpace(tienda)
	out := &dto.InventarioStatsResponse{Tienda: tienda, UmbralBajo: uc.umbralBajo}

	list, _, err := uc.repo.List(ctx, repository.InventarioFilter{Tienda: tienda})
	if err != nil {
		uc.log.Error().Err(err).Str("tienda", tienda).Msg("❌ calcular estadísticas de inventario")
		return out
	}
	for _, p := range list {
		out.TotalProductos++
		if p.Cantidad > 0 {
			out.TotalUnidades += p.Cantidad
		}
		switch {
		case p.Cantidad <= 0:
			out.SinStock++
		case p.Cantidad <= uc.umbralBajo:
			out.StockBajo++
		}
	}
	return out
}

// Tiendas devuelve las tiendas que tienen inventario cargado.
func (uc *InventarioUseCase) Tiendas(ctx context.Context) *dto.InventarioTiendasResponse {
	tiendas, err := uc.repo.ListTiendas(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("❌ obtener tiendas del inventario")
		tiendas = nil
	}
	if tiendas == nil {
		tiendas = []string{}
	}
	return &dto.InventarioTiendasResponse{Tiendas: tiendas}
}

func toProductoInventarioResponse(p *entity.ProductoInventario) dto.ProductoInventarioResponse {
	return dto.ProductoInventarioResponse{
		Producto: p.Producto,
		Cantidad: p.Cantidad,
		Tienda:   p.Tienda,
		Idx:      p.Idx,
	}
}

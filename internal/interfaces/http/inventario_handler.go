package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/application/usecase"
)

// InventarioHandler lectura del inventario por tienda.
type InventarioHandler struct {
	uc *usecase.InventarioUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(uc *usecase.InventarioUseCase) *InventarioHandler {
	return &InventarioHandler{uc: uc}
}

// List godoc
// @Summary      Listar inventario
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        tienda   query  string  false  "Tienda"
// @Param        search   query  string  false  "Búsqueda por producto"
// @Param        sort_by  query  string  false  "producto | cantidad | idx"
// @Param        order    query  string  false  "asc | desc"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {object}  dto.InventarioListResponse
// @Router       /api/inventario [get]
func (h *InventarioHandler) List(c *fiber.Ctx) error {
	var q dto.InventarioListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	return c.JSON(h.uc.List(c.UserContext(), q))
}

// Stats godoc
// @Summary      Resumen del inventario
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        tienda  query  string  false  "Tienda"
// @Success      200     {object}  dto.InventarioStatsResponse
// @Router       /api/inventario/stats [get]
func (h *InventarioHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.uc.Stats(c.UserContext(), c.Query("tienda")))
}

// Tiendas godoc
// @Summary      Tiendas con inventario
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventarioTiendasResponse
// @Router       /api/inventario/tiendas [get]
func (h *InventarioHandler) Tiendas(c *fiber.Ctx) error {
	return c.JSON(h.uc.Tiendas(c.UserContext()))
}

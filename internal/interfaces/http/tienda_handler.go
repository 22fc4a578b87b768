package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/application/usecase"
)

// TiendaHandler maneja las peticiones HTTP para Tienda.
type TiendaHandler struct {
	uc *usecase.TiendaUseCase
}

// NewTiendaHandler construye el handler.
func NewTiendaHandler(uc *usecase.TiendaUseCase) *TiendaHandler {
	return &TiendaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tienda
// @Tags         tiendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTiendaRequest  true  "Datos de la tienda"
// @Success      201   {object}  dto.TiendaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tiendas [post]
func (h *TiendaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTiendaRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar tienda
// @Tags         tiendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertTiendaRequest  true  "Tienda (con id = actualizar)"
// @Success      200   {object}  dto.TiendaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tiendas/upsert [post]
func (h *TiendaHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertTiendaRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Upsert(c.UserContext(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tienda
// @Tags         tiendas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la tienda"
// @Param        body  body  dto.UpdateTiendaRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.TiendaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tiendas/{id} [put]
func (h *TiendaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTiendaRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tienda por ID
// @Tags         tiendas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.TiendaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tiendas/{id} [get]
func (h *TiendaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tienda no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tiendas
// @Tags         tiendas
// @Security     Bearer
// @Produce      json
// @Param        estado   query  string  false  "activo | inactivo"
// @Param        search   query  string  false  "Búsqueda por nombre"
// @Param        sort_by  query  string  false  "nombre | created_at"
// @Param        order    query  string  false  "asc | desc"
// @Param        limit    query  int     false  "Límite"  default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200      {object}  dto.TiendaListResponse
// @Router       /api/tiendas [get]
func (h *TiendaHandler) List(c *fiber.Ctx) error {
	var q dto.TiendaListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	return c.JSON(h.uc.List(c.UserContext(), q))
}

// Delete godoc
// @Summary      Eliminar tienda
// @Tags         tiendas
// @Security     Bearer
// @Param        id   path  string  true  "ID de la tienda"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tiendas/{id} [delete]
func (h *TiendaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

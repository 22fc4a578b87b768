package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/domain/zona"
)

// ZonaHandler consulta la tabla de zonas (tipo de envío y listados para selects).
type ZonaHandler struct {
	resolver *zona.Resolver
}

// NewZonaHandler construye el handler.
func NewZonaHandler(resolver *zona.Resolver) *ZonaHandler {
	return &ZonaHandler{resolver: resolver}
}

// TipoEnvio godoc
// @Summary      Resolver tipo de envío
// @Tags         zonas
// @Produce      json
// @Param        provincia  query  string  true  "Provincia"
// @Param        canton     query  string  true  "Cantón"
// @Param        distrito   query  string  true  "Distrito"
// @Success      200        {object}  dto.TipoEnvioResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/zonas/tipo-envio [get]
func (h *ZonaHandler) TipoEnvio(c *fiber.Ctx) error {
	provincia, canton, distrito := c.Query("provincia"), c.Query("canton"), c.Query("distrito")
	tipo, ok := h.resolver.Resolve(provincia, canton, distrito)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ZONA_NOT_FOUND", Message: "zona no encontrada"})
	}
	return c.JSON(dto.TipoEnvioResponse{
		Provincia: provincia,
		Canton:    canton,
		Distrito:  distrito,
		TipoEnvio: tipo,
	})
}

// Provincias godoc
// @Summary      Listar provincias
// @Tags         zonas
// @Produce      json
// @Success      200  {object}  dto.ZonaListResponse
// @Router       /api/zonas/provincias [get]
func (h *ZonaHandler) Provincias(c *fiber.Ctx) error {
	return c.JSON(dto.ZonaListResponse{Items: h.resolver.Provincias()})
}

// Cantones godoc
// @Summary      Listar cantones de una provincia
// @Tags         zonas
// @Produce      json
// @Param        provincia  path  string  true  "Provincia"
// @Success      200        {object}  dto.ZonaListResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/zonas/provincias/{provincia}/cantones [get]
func (h *ZonaHandler) Cantones(c *fiber.Ctx) error {
	items := h.resolver.Cantones(param(c, "provincia"))
	if items == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ZONA_NOT_FOUND", Message: "provincia no encontrada"})
	}
	return c.JSON(dto.ZonaListResponse{Items: items})
}

// Distritos godoc
// @Summary      Listar distritos de un cantón
// @Tags         zonas
// @Produce      json
// @Param        provincia  path  string  true  "Provincia"
// @Param        canton     path  string  true  "Cantón"
// @Success      200        {object}  dto.ZonaListResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/zonas/provincias/{provincia}/cantones/{canton}/distritos [get]
func (h *ZonaHandler) Distritos(c *fiber.Ctx) error {
	items := h.resolver.Distritos(param(c, "provincia"), param(c, "canton"))
	if items == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ZONA_NOT_FOUND", Message: "cantón no encontrado"})
	}
	return c.JSON(dto.ZonaListResponse{Items: items})
}

// param devuelve el parámetro de ruta decodificado ("San%20Jos%C3%A9" -> "San José").
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

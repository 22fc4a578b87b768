package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/domain"
	"github.com/magicstars/ops-api/pkg/logger"
)

const maxDetailsBytes = 2048

// SyncHandler reenvía peticiones al servidor de automatización y devuelve su respuesta.
type SyncHandler struct {
	fw     ports.WebhookForwarder
	routes ports.WebhookRoutes
	log    *logger.Logger
}

// NewSyncHandler construye el handler.
func NewSyncHandler(fw ports.WebhookForwarder, routes ports.WebhookRoutes, log *logger.Logger) *SyncHandler {
	return &SyncHandler{fw: fw, routes: routes, log: log.Named("sync")}
}

// SyncRegistries godoc
// @Summary      Sincronizar registros
// @Description  Reenvía un POST al endpoint sync-registries. 2xx: cuerpo del servidor sin cambios.
// @Tags         sync
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ProxyErrorResponse
// @Failure      502  {object}  dto.ProxyErrorResponse
// @Router       /api/sync/registries [post]
func (h *SyncHandler) SyncRegistries(c *fiber.Ctx) error {
	return h.relay(c, ports.EndpointSyncRegistries, c.Body())
}

// SyncStatus godoc
// @Summary      Verificar ruta de sincronización
// @Tags         sync
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/sync/registries [get]
func (h *SyncHandler) SyncStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "sync-registries activo; use POST para sincronizar"})
}

// Forward godoc
// @Summary      Reenviar a un endpoint del servidor de automatización
// @Tags         webhooks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        endpoint  path  string  true  "Endpoint lógico"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ProxyErrorResponse
// @Failure      500  {object}  dto.ProxyErrorResponse
// @Failure      502  {object}  dto.ProxyErrorResponse
// @Router       /api/webhooks/{endpoint} [post]
func (h *SyncHandler) Forward(c *fiber.Ctx) error {
	return h.relay(c, c.Params("endpoint"), c.Body())
}

// Status godoc
// @Summary      Estado de migración de endpoints
// @Tags         webhooks
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  ports.EndpointStatus
// @Router       /api/webhooks/status [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.routes.Status())
}

// relay aplica la semántica de reenvío:
//   - 2xx: mismo status y cuerpo JSON sin cambios ({} si viene vacío).
//   - no 2xx: mismo status con {error, details=texto del servidor}.
//   - fallo de red: 500 con {error, details}.
func (h *SyncHandler) relay(c *fiber.Ctx, endpoint string, body []byte) error {
	resp, err := h.fw.Forward(c.UserContext(), endpoint, body)
	if err != nil {
		return h.writeForwardError(c, endpoint, err)
	}
	return h.writeResponse(c, endpoint, resp)
}

// isForwardError indica si err viene del reenvío al servidor de automatización.
func isForwardError(err error) bool {
	return errors.Is(err, domain.ErrUnknownEndpoint) ||
		errors.Is(err, domain.ErrWebhookUnavailable) ||
		errors.Is(err, domain.ErrWebhookTooLarge)
}

// writeForwardError traduce un fallo del reenvío al sobre {error, details}:
// 404 endpoint desconocido, 502 respuesta demasiado grande, 500 fallo de red.
func (h *SyncHandler) writeForwardError(c *fiber.Ctx, endpoint string, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownEndpoint):
		return c.Status(fiber.StatusNotFound).JSON(dto.ProxyErrorResponse{Error: "endpoint desconocido", Details: err.Error()})
	case errors.Is(err, domain.ErrWebhookTooLarge):
		h.log.Error().Err(err).Str("endpoint", endpoint).Msg("❌ respuesta demasiado grande del servidor de automatización")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ProxyErrorResponse{
			Error:   "respuesta demasiado grande",
			Details: err.Error(),
		})
	default:
		h.log.Error().Err(err).Str("endpoint", endpoint).Msg("❌ error de red con el servidor de automatización")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ProxyErrorResponse{
			Error:   "no se pudo contactar el servidor de automatización",
			Details: err.Error(),
		})
	}
}

// writeResponse devuelve al cliente la respuesta del servidor de automatización.
func (h *SyncHandler) writeResponse(c *fiber.Ctx, endpoint string, resp *ports.WebhookResponse) error {
	if !resp.OK() {
		h.log.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("servidor de automatización respondió con error")
		return c.Status(resp.StatusCode).JSON(dto.ProxyErrorResponse{
			Error:   "el servidor de automatización respondió con error",
			Details: string(resp.Body),
		})
	}

	if len(resp.Body) == 0 {
		return c.Status(resp.StatusCode).JSON(fiber.Map{})
	}
	if !json.Valid(resp.Body) {
		h.log.Error().Str("endpoint", endpoint).Msg("❌ respuesta no JSON del servidor de automatización")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ProxyErrorResponse{
			Error:   "respuesta inválida del servidor de automatización",
			Details: truncate(string(resp.Body), maxDetailsBytes),
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(resp.StatusCode).Send(resp.Body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

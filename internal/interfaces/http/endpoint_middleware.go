package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/magicstars/ops-api/internal/application/dto"
	"github.com/magicstars/ops-api/internal/domain"
)

// endpointChecker es el contrato mínimo que necesita el middleware para verificar endpoints.
// Lo implementa *webhook.Router.
type endpointChecker interface {
	Path(name string) (string, error)
}

// RequireKnownEndpoint verifica que el parámetro :endpoint sea un endpoint lógico conocido
// antes de reenviar nada al servidor de automatización.
//   - 404 con {error, details} si el endpoint no existe.
func RequireKnownEndpoint(checker endpointChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("endpoint")
		if _, err := checker.Path(name); err != nil {
			if errors.Is(err, domain.ErrUnknownEndpoint) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ProxyErrorResponse{
					Error:   "endpoint desconocido",
					Details: err.Error(),
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ProxyErrorResponse{Error: "error interno", Details: err.Error()})
		}
		return c.Next()
	}
}

package ports

import "context"

// Endpoints lógicos del servidor de automatización.
const (
	EndpointSyncRegistries   = "sync-registries"
	EndpointLogin            = "login"
	EndpointPedidosMensajero = "pedidos-mensajero"
	EndpointActualizarPedido = "actualizar-pedido"
	EndpointInventario       = "inventario"
	EndpointTiendas          = "tiendas"
	EndpointResumenDia       = "resumen-dia"
	EndpointLiquidacion      = "liquidacion"
)

// WebhookResponse respuesta cruda del servidor de automatización.
type WebhookResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK indica si el servidor respondió 2xx.
func (r *WebhookResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// WebhookForwarder define el puerto de salida hacia el servidor de automatización
// (n8n), que es quien ejecuta las mutaciones de negocio.
type WebhookForwarder interface {
	// Forward hace POST de body al endpoint lógico indicado. Solo devuelve error si el
	// endpoint no existe (domain.ErrUnknownEndpoint), si falla la red
	// (domain.ErrWebhookUnavailable) o si la respuesta excede el límite
	// (domain.ErrWebhookTooLarge); cualquier status HTTP se devuelve en WebhookResponse.
	Forward(ctx context.Context, endpoint string, body []byte) (*WebhookResponse, error)
}

// EndpointStatus estado de migración de un endpoint lógico.
type EndpointStatus struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Migrated bool   `json:"migrated"`
	BaseURL  string `json:"base_url"`
}

// WebhookRoutes tabla de endpoints lógicos y host que sirve cada uno.
type WebhookRoutes interface {
	Path(name string) (string, error)
	Status() []EndpointStatus
}

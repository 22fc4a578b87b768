package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magicstars/ops-api/internal/application/auth"
	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/application/usecase"
	"github.com/magicstars/ops-api/internal/domain/entity"
	"github.com/magicstars/ops-api/internal/domain/zona"
	"github.com/magicstars/ops-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	TiendaUC     *usecase.TiendaUseCase
	InventarioUC *usecase.InventarioUseCase
	PedidoUC     *usecase.PedidoUseCase
	Zonas        *zona.Resolver
	Webhook      ports.WebhookForwarder
	WebhookRoute ports.WebhookRoutes
	Logger       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	syncHandler := NewSyncHandler(deps.Webhook, deps.WebhookRoute, deps.Logger)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Sincronización (público, lo dispara el dashboard)
	api.Post("/sync/registries", syncHandler.SyncRegistries)
	api.Get("/sync/registries", syncHandler.SyncStatus)

	// Zonas (público, datos estáticos)
	zonaHandler := NewZonaHandler(deps.Zonas)
	zonas := api.Group("/zonas")
	zonas.Get("/tipo-envio", zonaHandler.TipoEnvio)
	zonas.Get("/provincias", zonaHandler.Provincias)
	zonas.Get("/provincias/:provincia/cantones", zonaHandler.Cantones)
	zonas.Get("/provincias/:provincia/cantones/:canton/distritos", zonaHandler.Distritos)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	lideres := RequireRole(entity.RoleAdmin, entity.RoleMensajeroLider)
	todos := RequireRole(entity.RoleAdmin, entity.RoleMensajeroLider, entity.RoleMensajero)

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.Logout)

	// Tiendas: lectura para admin y líder, escritura solo admin
	tiendaHandler := NewTiendaHandler(deps.TiendaUC)
	tiendas := protected.Group("/tiendas")
	tiendas.Get("/", lideres, tiendaHandler.List)
	tiendas.Get("/:id", lideres, tiendaHandler.GetByID)
	tiendas.Post("/", RequireRole(entity.RoleAdmin), tiendaHandler.Create)
	tiendas.Post("/upsert", RequireRole(entity.RoleAdmin), tiendaHandler.Upsert)
	tiendas.Put("/:id", RequireRole(entity.RoleAdmin), tiendaHandler.Update)
	tiendas.Delete("/:id", RequireRole(entity.RoleAdmin), tiendaHandler.Delete)

	// Inventario
	inventarioHandler := NewInventarioHandler(deps.InventarioUC)
	inventario := protected.Group("/inventario", lideres)
	inventario.Get("/", inventarioHandler.List)
	inventario.Get("/stats", inventarioHandler.Stats)
	inventario.Get("/tiendas", inventarioHandler.Tiendas)

	// Pedidos
	pedidoHandler := NewPedidoHandler(deps.PedidoUC, syncHandler)
	pedidos := protected.Group("/pedidos")
	pedidos.Get("/", todos, pedidoHandler.List)
	pedidos.Get("/resumen", lideres, pedidoHandler.Resumen)
	pedidos.Get("/hoja-ruta", todos, pedidoHandler.HojaRuta)
	pedidos.Patch("/:id/estado", todos, pedidoHandler.ActualizarEstado)

	// Webhooks
	webhooks := protected.Group("/webhooks")
	webhooks.Get("/status", RequireRole(entity.RoleAdmin), syncHandler.Status)
	webhooks.Post("/:endpoint", lideres, RequireKnownEndpoint(deps.WebhookRoute), syncHandler.Forward)
}

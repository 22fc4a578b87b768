package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/magicstars/ops-api/internal/application/auth"
	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/application/usecase"
	"github.com/magicstars/ops-api/internal/domain/zona"
	"github.com/magicstars/ops-api/internal/infrastructure/cache"
	infrapdf "github.com/magicstars/ops-api/internal/infrastructure/pdf"
	"github.com/magicstars/ops-api/internal/infrastructure/postgres"
	"github.com/magicstars/ops-api/internal/infrastructure/webhook"
	httpRouter "github.com/magicstars/ops-api/internal/interfaces/http"
	"github.com/magicstars/ops-api/pkg/config"
	"github.com/magicstars/ops-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tiendaRepo := postgres.NewTiendaRepository(pool)
	inventarioRepo := postgres.NewInventarioRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	zonas, err := zona.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar tabla de zonas")
	}

	// Un único cliente HTTP hacia el servidor de automatización para todo el proceso.
	webhookRouter := webhook.NewRouter(cfg.Webhook.PrimaryURL, cfg.Webhook.LegacyURL)
	webhookClient := webhook.NewClient(webhookRouter, cfg.Webhook.Timeout).WithMaxResponseBytes(cfg.Webhook.MaxResponseBytes)
	log.Info().
		Str("primary", cfg.Webhook.PrimaryURL).
		Str("legacy", cfg.Webhook.LegacyURL).
		Strs("migrados", webhook.MigratedEndpoints()).
		Msg("servidor de automatización")

	// Revocación de tokens: Redis si está configurado, memoria en otro caso.
	var blacklist ports.TokenBlacklist
	if cfg.Redis.Addr != "" {
		redisBlacklist, err := cache.NewRedisTokenBlacklist(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer redisBlacklist.Close()
		blacklist = redisBlacklist
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: revocación de tokens en memoria (una sola instancia)")
		blacklist = cache.NewMemoryTokenBlacklist()
	}

	authUC := auth.NewAuthUseCase(usuarioRepo, blacklist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	tiendaUC := usecase.NewTiendaUseCase(tiendaRepo, txRunner, log)
	inventarioUC := usecase.NewInventarioUseCase(inventarioRepo, cfg.Inventario.UmbralBajo, log)
	pedidoUC := usecase.NewPedidoUseCase(pedidoRepo, zonas, webhookClient, infrapdf.NewHojaRutaGenerator(), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Webhook.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Magic Stars API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		TiendaUC:     tiendaUC,
		InventarioUC: inventarioUC,
		PedidoUC:     pedidoUC,
		Zonas:        zonas,
		Webhook:      webhookClient,
		WebhookRoute: webhookRouter,
		Logger:       log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/renexpress/storefront-api/docs"
	"github.com/renexpress/storefront-api/internal/application/auth"
	"github.com/renexpress/storefront-api/internal/application/seller"
	"github.com/renexpress/storefront-api/internal/application/storefront"
	"github.com/renexpress/storefront-api/internal/application/usecase"
	"github.com/renexpress/storefront-api/internal/domain/repository"
	infrakafka "github.com/renexpress/storefront-api/internal/infrastructure/kafka"
	"github.com/renexpress/storefront-api/internal/infrastructure/marketplace"
	"github.com/renexpress/storefront-api/internal/infrastructure/memory"
	infrapdf "github.com/renexpress/storefront-api/internal/infrastructure/pdf"
	"github.com/renexpress/storefront-api/internal/infrastructure/postgres"
	infraredis "github.com/renexpress/storefront-api/internal/infrastructure/redis"
	httpRouter "github.com/renexpress/storefront-api/internal/interfaces/http"
	"github.com/renexpress/storefront-api/pkg/config"
	"github.com/renexpress/storefront-api/pkg/logger"
)

// catalogStore caché del catálogo y de fichas de producto (Redis o memoria).
type catalogStore interface {
	repository.CatalogCache
	repository.ProductCache
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("marketplace", cfg.Marketplace.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend := marketplace.NewClient(cfg.Marketplace, log)

	// Caché del catálogo y almacén del limitador: Redis si está habilitado, si no en memoria (una sola instancia).
	var (
		store   catalogStore
		limiter fiber.Storage
	)
	if cfg.Redis.Enabled {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		store = infraredis.NewCatalogCache(rdb, cfg.Redis.Prefix, cfg.Catalog.StaleTTL, log)
		limiter = infraredis.NewLimiterStorage(rdb, cfg.Redis.Prefix)
	} else {
		store = memory.NewCatalogCache(cfg.Catalog.StaleTTL)
	}

	// Borradores del vendedor: solo con PostgreSQL.
	var drafts repository.DraftRepository
	if cfg.DB.Enabled {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString(), log); err != nil {
			log.Fatal().Err(err).Msg("migraciones de PostgreSQL")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		drafts = postgres.NewDraftRepository(pool)
	} else {
		log.Warn().Msg("DB_ENABLED=false: borradores deshabilitados")
	}

	var events repository.EventPublisher = infrakafka.Noop{}
	if cfg.Kafka.Enabled {
		producer := infrakafka.NewProducer(cfg.Kafka, log)
		defer producer.Close()
		events = producer
	}

	catalogSvc := storefront.NewCatalogService(backend, store, events, storefront.CatalogConfig{
		FreshTTL: cfg.Catalog.CacheTTL,
		StaleTTL: cfg.Catalog.StaleTTL,
	}, log)
	browseSvc := storefront.NewBrowseService(catalogSvc, storefront.BrowseConfig{
		HomeLabel: cfg.Catalog.HomeLabel,
		PageSize:  cfg.Catalog.PageSize,
		MaxPrice:  cfg.Catalog.MaxPrice,
	})
	productUC := usecase.NewProductUseCase(backend, catalogSvc, store, events, log)
	sellerSvc := seller.NewService(backend, catalogSvc, drafts, events, log)
	analyticsUC := usecase.NewAnalyticsUseCase(backend, infrapdf.NewSellerReportGenerator(cfg.Report.StoreName, cfg.Report.DashboardURL))
	authUC := auth.NewAuthUseCase(backend, events, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	// Precarga del catálogo; si falla, la primera petición lo intenta de nuevo.
	warmCtx, cancelWarm := context.WithTimeout(ctx, cfg.Marketplace.Timeout)
	if _, err := catalogSvc.View(warmCtx); err != nil {
		log.Warn().Err(err).Msg("precarga del catálogo fallida")
	}
	cancelWarm()

	app := httpRouter.NewApp(cfg.App.Name, cfg.HTTP)
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Storefront API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:          browseSvc,
		ProductUC:        productUC,
		SellerSvc:        sellerSvc,
		AnalyticsUC:      analyticsUC,
		AuthUC:           authUC,
		RateLimitStorage: limiter,
		LoginLimit:       cfg.RateLimit.LoginLimit,
		LoginWindow:      cfg.RateLimit.LoginWindow,
		JWTSecret:        cfg.JWT.Secret,
		Log:              log,
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

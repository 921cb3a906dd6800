package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/renexpress/storefront-api/internal/application/auth"
	"github.com/renexpress/storefront-api/internal/application/seller"
	"github.com/renexpress/storefront-api/internal/application/storefront"
	"github.com/renexpress/storefront-api/internal/application/usecase"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog     *storefront.BrowseService
	ProductUC   *usecase.ProductUseCase
	SellerSvc   *seller.Service
	AnalyticsUC *usecase.AnalyticsUseCase
	AuthUC      *auth.AuthUseCase

	// RateLimitStorage nil limita en memoria del proceso; LoginLimit 0 desactiva el límite.
	RateLimitStorage fiber.Storage
	LoginLimit       int
	LoginWindow      time.Duration

	JWTSecret string
	Log       *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo (público)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	api.Get("/catalog", catalogHandler.Browse)
	api.Get("/home", catalogHandler.Home)

	// Ficha de producto (público; con token se registra el cliente en el evento de vista)
	products := api.Group("/products", OptionalAuth(deps.JWTSecret))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/variants", productHandler.Variants)

	// Auth (público, con límite por IP)
	authGroup := api.Group("/auth")
	if deps.LoginLimit > 0 {
		authGroup.Use(RateLimit(deps.RateLimitStorage, "auth", deps.LoginLimit, deps.LoginWindow, deps.Log))
	}
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Panel del vendedor (requiere Bearer Token de cliente)
	sellerGroup := api.Group("/seller", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleClient))

	sellerHandler := NewSellerHandler(deps.SellerSvc)
	sellerGroup.Get("/products", sellerHandler.List)
	sellerGroup.Post("/products", sellerHandler.Submit)
	sellerGroup.Put("/products/:id", sellerHandler.Update)
	sellerGroup.Post("/products/:id/resubmit", sellerHandler.Resubmit)
	sellerGroup.Delete("/products/:id", sellerHandler.Delete)
	sellerGroup.Get("/categories", sellerHandler.Categories)

	sellerGroup.Get("/drafts", sellerHandler.Drafts)
	sellerGroup.Post("/drafts", sellerHandler.SaveDraft)
	sellerGroup.Get("/drafts/:id", sellerHandler.Draft)
	sellerGroup.Put("/drafts/:id", sellerHandler.UpdateDraft)
	sellerGroup.Delete("/drafts/:id", sellerHandler.DeleteDraft)

	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	sellerGroup.Get("/analytics", analyticsHandler.Dashboard)
	sellerGroup.Get("/analytics/report.pdf", analyticsHandler.Report)
}

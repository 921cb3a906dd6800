package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/renexpress/storefront-api/pkg/config"
)

// NewApp crea la app de Fiber con los tiempos del servidor y la resolución de la IP del cliente.
// Con TrustedProxies solo se lee ProxyHeader si la conexión viene de uno de ellos.
func NewApp(name string, cfg config.HTTPConfig) *fiber.App {
	fc := fiber.Config{
		AppName:      name,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ProxyHeader:  cfg.ProxyHeader,
	}
	if cfg.ProxyHeader != "" && len(cfg.TrustedProxies) > 0 {
		fc.EnableTrustedProxyCheck = true
		fc.TrustedProxies = cfg.TrustedProxies
	}
	return fiber.New(fc)
}

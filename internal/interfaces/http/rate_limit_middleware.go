package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/pkg/logger"
)

// RateLimit limita las peticiones por IP y grupo de rutas con ventana fija.
//
// Comportamiento:
//   - storage nil usa la memoria del proceso; con Redis el límite es compartido entre réplicas.
//   - 429 Too Many Requests con Retry-After al superar limit.
//   - Si el almacén falla la petición pasa y se registra el error.
func RateLimit(storage fiber.Storage, name string, limit int, window time.Duration, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	cfg := limiter.Config{
		Max:        limit,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intente más tarde",
			})
		},
		LimiterMiddleware: limiter.FixedWindow{},
	}
	if storage != nil {
		cfg.Storage = &loggedStorage{Storage: storage, name: name, log: log}
	}
	return limiter.New(cfg)
}

// loggedStorage registra los fallos del almacén; el limiter de Fiber los ignora y deja pasar.
type loggedStorage struct {
	fiber.Storage
	name string
	log  *logger.Logger
}

func (s *loggedStorage) Get(key string) ([]byte, error) {
	val, err := s.Storage.Get(key)
	if err != nil {
		s.log.Warn().Err(err).Str("limiter", s.name).Msg("limitador no disponible")
	}
	return val, err
}

func (s *loggedStorage) Set(key string, val []byte, exp time.Duration) error {
	err := s.Storage.Set(key, val, exp)
	if err != nil {
		s.log.Warn().Err(err).Str("limiter", s.name).Msg("limitador no disponible")
	}
	return err
}

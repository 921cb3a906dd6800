package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/pkg/jwt"
)

// Locals keys para la sesión del cliente en Fiber.
const (
	LocalClientID = "client_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// bearerToken extrae el token del header Authorization. ok=false si el header no existe.
func bearerToken(c *fiber.Ctx) (token string, ok bool, errResp *dto.ErrorResponse) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false, nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true, &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", true, &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	return token, true, nil
}

func setSession(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalClientID, claims.ClientID)
	c.Locals(LocalUsername, claims.Username)
	c.Locals(LocalRole, claims.Role)
}

// AuthMiddleware valida el Bearer Token JWT y carga client_id, username y role en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, present, errResp := bearerToken(c)
		if !present {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errResp)
		}
		claims, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		setSession(c, claims)
		return c.Next()
	}
}

// OptionalAuth carga la sesión si hay un token válido; sin token o con token inválido sigue como anónimo.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, present, errResp := bearerToken(c)
		if present && errResp == nil {
			if claims, err := jwt.Parse(jwtSecret, token); err == nil {
				setSession(c, claims)
			}
		}
		return c.Next()
	}
}

// RequireRole autoriza solo los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
		}
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetClientID devuelve el client_id de la sesión; vacío si es anónima.
func GetClientID(c *fiber.Ctx) entity.ID { return entity.ID(localString(c, LocalClientID)) }

// GetUsername devuelve el usuario de la sesión.
func GetUsername(c *fiber.Ctx) string { return localString(c, LocalUsername) }

// GetRole devuelve el rol de la sesión.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

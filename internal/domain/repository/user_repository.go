package repository

import (
	"context"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// AuthGateway autentica y registra clientes contra el backend del marketplace.
// Login devuelve domain.ErrUnauthorized con el mensaje del backend si las credenciales no son válidas.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*entity.Client, error)
	Register(ctx context.Context, fullName, phone string) (*entity.Client, error)
}

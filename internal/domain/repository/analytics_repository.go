package repository

import (
	"context"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// SellerStatsSource puerto de estadísticas del vendedor.
type SellerStatsSource interface {
	MyStats(ctx context.Context, clientID entity.ID) (*entity.SellerStats, error)
}

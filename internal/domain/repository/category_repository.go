package repository

import (
	"context"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// CatalogSource puerto de lectura del catálogo público del marketplace (DIP).
// Las implementaciones devuelven datos ya normalizados al modelo canónico.
type CatalogSource interface {
	Categories(ctx context.Context) ([]entity.Category, error)
	Products(ctx context.Context) ([]entity.Product, error)
	Colors(ctx context.Context) ([]entity.Color, error)
}

// CatalogCache almacena el último snapshot del catálogo. GetSnapshot devuelve (nil, nil) si no hay.
type CatalogCache interface {
	GetSnapshot(ctx context.Context) (*entity.CatalogSnapshot, error)
	SetSnapshot(ctx context.Context, snapshot *entity.CatalogSnapshot) error
	Invalidate(ctx context.Context) error
}

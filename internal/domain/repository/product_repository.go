package repository

import (
	"context"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// ProductSource puerto de lectura de la ficha de producto.
// Product devuelve domain.ErrNotFound si el producto no existe.
type ProductSource interface {
	Product(ctx context.Context, id entity.ID) (*entity.Product, error)
	Combinations(ctx context.Context, productID entity.ID) (entity.VariantSet, error)
	Reviews(ctx context.Context, productID entity.ID) ([]entity.Review, error)
}

// SellerProductSource puerto del flujo de productos del vendedor.
type SellerProductSource interface {
	MyProducts(ctx context.Context, clientID entity.ID) ([]entity.SellerProduct, error)
	Submit(ctx context.Context, s entity.ProductSubmission) (entity.ID, error)
	UpdateSubmit(ctx context.Context, s entity.ProductSubmission) error
	Delete(ctx context.Context, productID entity.ID) error
}

// DraftRepository persistencia de borradores de producto del vendedor.
type DraftRepository interface {
	Save(ctx context.Context, draft *entity.ProductDraft) error
	GetByID(ctx context.Context, clientID entity.ID, id string) (*entity.ProductDraft, error) // (nil, nil) si no existe
	ListByClient(ctx context.Context, clientID entity.ID, limit, offset int) ([]*entity.ProductDraft, error)
	Delete(ctx context.Context, clientID entity.ID, id string) error
}

// ProductCache caché de fichas de producto por ID. Los fallos se reportan como ausencias.
type ProductCache interface {
	GetProducts(ctx context.Context, ids []entity.ID) (map[entity.ID]entity.Product, error)
	SetProducts(ctx context.Context, products []entity.Product) error
	DeleteProducts(ctx context.Context, ids []entity.ID) error
}

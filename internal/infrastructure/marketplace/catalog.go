package marketplace

import (
	"context"
	"fmt"
	"net/url"

	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/repository"
)

var (
	_ repository.CatalogSource = (*Client)(nil)
	_ repository.ProductSource = (*Client)(nil)
)

// Categories GET /categories/.
func (c *Client) Categories(ctx context.Context) ([]entity.Category, error) {
	raw, err := c.get(ctx, "/categories/", nil)
	if err != nil {
		return nil, err
	}
	cats, err := normalizeCategories(raw)
	if err != nil {
		return nil, fmt.Errorf("marketplace: categorías: %w", err)
	}
	return cats, nil
}

// Products GET /products/.
func (c *Client) Products(ctx context.Context) ([]entity.Product, error) {
	raw, err := c.get(ctx, "/products/", nil)
	if err != nil {
		return nil, err
	}
	products, err := normalizeProducts(raw, "results", "products")
	if err != nil {
		return nil, fmt.Errorf("marketplace: productos: %w", err)
	}
	return products, nil
}

// Colors GET /colors/.
func (c *Client) Colors(ctx context.Context) ([]entity.Color, error) {
	raw, err := c.get(ctx, "/colors/", nil)
	if err != nil {
		return nil, err
	}
	colors, err := normalizeColors(raw)
	if err != nil {
		return nil, fmt.Errorf("marketplace: colores: %w", err)
	}
	return colors, nil
}

// Product GET /products/{id}/.
func (c *Client) Product(ctx context.Context, id entity.ID) (*entity.Product, error) {
	raw, err := c.get(ctx, productPath(id, ""), nil)
	if err != nil {
		return nil, err
	}
	p, err := normalizeProduct(raw)
	if err != nil {
		return nil, fmt.Errorf("marketplace: producto %s: %w", id, err)
	}
	if p.ID.IsZero() {
		p.ID = id
	}
	return p, nil
}

// Combinations GET /products/{id}/combinations/.
func (c *Client) Combinations(ctx context.Context, productID entity.ID) (entity.VariantSet, error) {
	raw, err := c.get(ctx, productPath(productID, "combinations/"), nil)
	if err != nil {
		return entity.VariantSet{}, err
	}
	set, err := normalizeVariantSet(raw)
	if err != nil {
		return entity.VariantSet{}, fmt.Errorf("marketplace: combinaciones %s: %w", productID, err)
	}
	return set, nil
}

// Reviews GET /products/{id}/reviews/.
func (c *Client) Reviews(ctx context.Context, productID entity.ID) ([]entity.Review, error) {
	raw, err := c.get(ctx, productPath(productID, "reviews/"), nil)
	if err != nil {
		return nil, err
	}
	reviews, err := normalizeReviews(raw)
	if err != nil {
		return nil, fmt.Errorf("marketplace: reseñas %s: %w", productID, err)
	}
	return reviews, nil
}

func productPath(id entity.ID, suffix string) string {
	return "/products/" + url.PathEscape(id.String()) + "/" + suffix
}

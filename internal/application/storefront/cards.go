package storefront

import (
	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/domain/catalog"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/pkg/money"
)

// Card convierte un producto en su tarjeta de listado.
func Card(p entity.Product) dto.ProductCardDTO {
	card := dto.ProductCardDTO{
		ID:           p.ID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		Price:        p.DisplayPrice(),
		PriceText:    money.Format(p.DisplayPrice()),
		InStock:      p.InStock(),
		Rating:       p.Rating,
		ReviewsCount: p.ReviewsCount,
	}
	if p.HasDiscount() {
		old := p.RetailPrice
		card.OldPrice = &old
		card.DiscountPercent = p.DiscountPercent()
	}
	if gallery := p.Gallery(); len(gallery) > 0 {
		card.Image = gallery[0]
	}
	return card
}

// Cards convierte una lista de productos; nunca devuelve nil.
func Cards(products []entity.Product) []dto.ProductCardDTO {
	out := make([]dto.ProductCardDTO, 0, len(products))
	for _, p := range products {
		out = append(out, Card(p))
	}
	return out
}

func categoryDTOs(tree *catalog.Tree, cats []entity.Category, products []entity.Product) []dto.CategoryDTO {
	out := make([]dto.CategoryDTO, 0, len(cats))
	for _, c := range cats {
		out = append(out, dto.CategoryDTO{
			ID:           c.ID,
			Name:         c.Name,
			ParentID:     c.ParentID,
			Slug:         c.Slug,
			ImageURL:     c.ImageURL,
			HasChildren:  tree.HasChildren(c.ID),
			ProductCount: tree.CountProducts(c.ID, products),
		})
	}
	return out
}

func colorDTOs(colors []entity.Color) []dto.ColorDTO {
	out := make([]dto.ColorDTO, 0, len(colors))
	for _, c := range colors {
		out = append(out, dto.ColorDTO{ID: c.ID, Name: c.Name, HexCode: c.HexCode})
	}
	return out
}

// Crumbs convierte la miga de pan del navegador.
func Crumbs(crumbs []catalog.Crumb) []dto.CrumbDTO {
	out := make([]dto.CrumbDTO, 0, len(crumbs))
	for _, c := range crumbs {
		out = append(out, dto.CrumbDTO{ID: c.ID, Label: c.Label, Back: c.BackIndex})
	}
	return out
}

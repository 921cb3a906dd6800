package dto

import (
	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// CategoryDTO categoría mostrada en el navegador del catálogo.
type CategoryDTO struct {
	ID           entity.ID `json:"id"`
	Name         string    `json:"name"`
	ParentID     entity.ID `json:"parent_id"`
	Slug         string    `json:"slug,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	HasChildren  bool      `json:"has_children"`
	ProductCount int       `json:"product_count"`
}

// CrumbDTO entrada de la miga de pan. Back es el valor a enviar en ?back= para volver a ella.
type CrumbDTO struct {
	ID    entity.ID `json:"id,omitempty"`
	Label string    `json:"label"`
	Back  int       `json:"back"`
}

// ColorDTO color del filtro.
type ColorDTO struct {
	ID      entity.ID `json:"id"`
	Name    string    `json:"name"`
	HexCode string    `json:"hex_code"`
}

// ProductCardDTO tarjeta de producto en listados.
type ProductCardDTO struct {
	ID              entity.ID        `json:"id"`
	Name            string           `json:"name"`
	CategoryID      entity.ID        `json:"category_id"`
	Price           decimal.Decimal  `json:"price"`
	OldPrice        *decimal.Decimal `json:"old_price,omitempty"`
	DiscountPercent int              `json:"discount_percent,omitempty"`
	PriceText       string           `json:"price_text"`
	Image           string           `json:"image,omitempty"`
	InStock         bool             `json:"in_stock"`
	Rating          decimal.Decimal  `json:"rating"`
	ReviewsCount    int              `json:"reviews_count"`
}

// BrowseResponse vista del catálogo para una posición del navegador y unos filtros.
type BrowseResponse struct {
	Path       []entity.ID      `json:"path"`
	Breadcrumb []CrumbDTO       `json:"breadcrumb"`
	Categories []CategoryDTO    `json:"categories"`
	Colors     []ColorDTO       `json:"colors"`
	Products   []ProductCardDTO `json:"products"`
	Sort       string           `json:"sort"`
	PageResponse
}

// HomeResponse portada de la tienda.
type HomeResponse struct {
	EditorPicks   []ProductCardDTO `json:"editor_picks"`
	Trending      []ProductCardDTO `json:"trending"`
	TopCategories []CategoryDTO    `json:"top_categories"`
}

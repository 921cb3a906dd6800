package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// VariantValueDTO valor de una dimensión con su disponibilidad frente a la selección actual.
type VariantValueDTO struct {
	ValueID      entity.ID `json:"value_id"`
	Value        string    `json:"value"`
	DisplayValue string    `json:"display_value"`
	HexCode      string    `json:"hex_code,omitempty"`
	Available    bool      `json:"available"`
	Selected     bool      `json:"selected"`
}

// VariantAttributeDTO dimensión de variación.
type VariantAttributeDTO struct {
	Code   string            `json:"code"`
	Name   string            `json:"name,omitempty"`
	Values []VariantValueDTO `json:"values"`
}

// OfferDTO precio y stock efectivos de la selección.
type OfferDTO struct {
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	WholesalePrice  decimal.Decimal `json:"wholesale_price"`
	PriceText       string          `json:"price_text"`
	InStock         bool            `json:"in_stock"`
	Quantity        *int            `json:"quantity"`
	HasDiscount     bool            `json:"has_discount"`
	DiscountPercent int             `json:"discount_percent"`
	Purchasable     bool            `json:"purchasable"`
}

// VariantStateDTO estado del selector de variantes.
type VariantStateDTO struct {
	Mode       string                `json:"mode"`
	Attributes []VariantAttributeDTO `json:"attributes"`
	Selected   map[string]entity.ID  `json:"selected"`
	SKU        string                `json:"sku,omitempty"`
	Offer      OfferDTO              `json:"offer"`
}

// ReviewDTO reseña de comprador.
type ReviewDTO struct {
	ID        entity.ID `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductDetailDTO ficha completa de producto.
type ProductDetailDTO struct {
	ID               entity.ID        `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	SKU              string           `json:"sku,omitempty"`
	Article          string           `json:"article,omitempty"`
	CategoryID       entity.ID        `json:"category_id"`
	CategoryFullPath string           `json:"category_full_path,omitempty"`
	Rating           decimal.Decimal  `json:"rating"`
	ReviewsCount     int              `json:"reviews_count"`
	Images           []string         `json:"images"`
	Variants         VariantStateDTO  `json:"variants"`
	Reviews          []ReviewDTO      `json:"reviews"`
	Similar          []ProductCardDTO `json:"similar"`
}

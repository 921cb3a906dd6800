package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// SellerProductDTO fila del listado "Mis productos".
type SellerProductDTO struct {
	ID              entity.ID            `json:"id"`
	Name            string               `json:"name"`
	SKU             string               `json:"sku,omitempty"`
	Article         string               `json:"article,omitempty"`
	Status          entity.ProductStatus `json:"status"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	RetailPrice     decimal.Decimal      `json:"retail_price"`
	DiscountPrice   *decimal.Decimal     `json:"discount_price,omitempty"`
	PriceText       string               `json:"price_text"`
	StockQuantity   *int                 `json:"stock_quantity"`
	Image           string               `json:"image,omitempty"`
	CategoryID      entity.ID            `json:"category_id"`
	CategoryPath    string               `json:"category_path,omitempty"`
	ViewsCount      int                  `json:"views_count"`
	SalesCount      int                  `json:"sales_count"`
	UpdatedAt       time.Time            `json:"updated_at"`
	CanEdit         bool                 `json:"can_edit"`
	CanDelete       bool                 `json:"can_delete"`
	CanResubmit     bool                 `json:"can_resubmit"`
}

// SellerProductListResponse listado filtrado con contadores por pestaña.
type SellerProductListResponse struct {
	Tab      string             `json:"tab"`
	Items    []SellerProductDTO `json:"items"`
	Total    int                `json:"total"`
	Counters map[string]int     `json:"counters"`
}

// VariantOptionInput opción de variante libre ("Talla": S, M, L).
type VariantOptionInput struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// SubmitProductRequest formulario de alta o edición de producto.
type SubmitProductRequest struct {
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	CategoryID      entity.ID               `json:"category_id"`
	RetailPrice     Amount                  `json:"retail_price"`
	DiscountEnabled bool                    `json:"discount_enabled"`
	DiscountPrice   Amount                  `json:"discount_price"`
	WholesalePrice  Amount                  `json:"wholesale_price"`
	StockQuantity   *int                    `json:"stock_quantity"`
	SKU             string                  `json:"sku"`
	Characteristics []entity.Characteristic `json:"characteristics"`
	ImageURLs       []string                `json:"image_urls"`
	VariantOptions  []VariantOptionInput    `json:"variant_options"`
	ColorIDs        []entity.ID             `json:"color_ids"`
}

// SubmitProductResponse resultado del envío a moderación.
type SubmitProductResponse struct {
	ID     entity.ID            `json:"id,omitempty"`
	Status entity.ProductStatus `json:"status"`
}

// CategoryOptionDTO opción del selector de categoría del vendedor.
type CategoryOptionDTO struct {
	ID          entity.ID `json:"id"`
	Name        string    `json:"name"`
	FullPath    string    `json:"full_path"`
	HasChildren bool      `json:"has_children"`
}

// CategoryPickerResponse hijos de parent (o resultados de búsqueda si hay q).
type CategoryPickerResponse struct {
	Parent entity.ID           `json:"parent,omitempty"`
	Path   []CrumbDTO          `json:"path"`
	Items  []CategoryOptionDTO `json:"items"`
}

// DraftRequest guardado de borrador. Payload es el formulario tal cual.
type DraftRequest struct {
	Title   string          `json:"title"`
	Payload json.RawMessage `json:"payload"`
	Price   Amount          `json:"price"`
}

// DraftDTO borrador guardado.
type DraftDTO struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Payload   json.RawMessage  `json:"payload"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

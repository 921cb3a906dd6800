package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto publicado en el marketplace, ya normalizado desde el payload del backend.
// StockQuantity nil significa stock ilimitado o desconocido.
type Product struct {
	ID               ID                  `json:"id"`
	Name             string              `json:"name"`
	Description      string              `json:"description,omitempty"`
	SKU              string              `json:"sku,omitempty"`
	Article          string              `json:"article,omitempty"`
	CategoryID       ID                  `json:"category_id"`
	CategoryFullPath string              `json:"category_full_path,omitempty"` // "Ropa > Camisas"
	RetailPrice      decimal.Decimal     `json:"retail_price"`
	DiscountPrice    decimal.NullDecimal `json:"discount_price"`
	WholesalePrice   decimal.NullDecimal `json:"wholesale_price"`
	StockQuantity    *int                `json:"stock_quantity"`
	ColorIDs         []ID                `json:"color_ids,omitempty"`
	Colors           []Color             `json:"colors,omitempty"`
	Sizes            []Size              `json:"sizes,omitempty"`
	PrimaryImage     string              `json:"primary_image,omitempty"`
	Images           []string            `json:"images,omitempty"`
	Rating           decimal.Decimal     `json:"rating"`
	ReviewsCount     int                 `json:"reviews_count"`
	CreatedAt        time.Time           `json:"created_at"`
}

// HasDiscount indica si hay precio de descuento válido (menor que el precio de venta).
func (p Product) HasDiscount() bool {
	return p.DiscountPrice.Valid && p.DiscountPrice.Decimal.IsPositive() &&
		p.DiscountPrice.Decimal.LessThan(p.RetailPrice)
}

// DisplayPrice precio que ve el comprador: descuento si existe, si no el precio de venta.
func (p Product) DisplayPrice() decimal.Decimal {
	if p.DiscountPrice.Valid && p.DiscountPrice.Decimal.IsPositive() {
		return p.DiscountPrice.Decimal
	}
	return p.RetailPrice
}

// DiscountPercent porcentaje de descuento redondeado; 0 si no hay descuento.
func (p Product) DiscountPercent() int {
	if !p.HasDiscount() || !p.RetailPrice.IsPositive() {
		return 0
	}
	ratio := p.DiscountPrice.Decimal.Div(p.RetailPrice)
	return int(decimal.NewFromInt(1).Sub(ratio).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// InStock sin señal de cantidad se asume disponible.
func (p Product) InStock() bool {
	return p.StockQuantity == nil || *p.StockQuantity > 0
}

// HasColor indica si el producto tiene alguno de los colores dados.
func (p Product) HasColor(ids ...ID) bool {
	for _, want := range ids {
		for _, have := range p.ColorIDs {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Gallery devuelve la imagen principal seguida de la galería, sin duplicados y sin vacíos.
func (p Product) Gallery() []string {
	seen := make(map[string]struct{}, len(p.Images)+1)
	out := make([]string, 0, len(p.Images)+1)
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	add(p.PrimaryImage)
	for _, u := range p.Images {
		add(u)
	}
	return out
}

// Color color de la paleta del marketplace.
type Color struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	HexCode string `json:"hex_code"`
}

// Size talla declarada en el producto.
type Size struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Review reseña de un comprador.
type Review struct {
	ID        ID        `json:"id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

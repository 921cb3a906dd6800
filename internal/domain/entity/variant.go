package entity

import "github.com/shopspring/decimal"

// VariantValue valor concreto de una dimensión (p. ej. "Rojo" para color).
type VariantValue struct {
	ValueID      ID     `json:"value_id"`
	Value        string `json:"value"`
	DisplayValue string `json:"display_value"`
	HexCode      string `json:"hex_code,omitempty"`
}

// VariantAttribute dimensión de variación de un producto. Code es único por producto;
// ValueID es único dentro de Values.
type VariantAttribute struct {
	Code   string         `json:"code"`
	Name   string         `json:"name,omitempty"`
	Values []VariantValue `json:"values"`
}

// VariantCombination SKU con precio y stock propios: un valor por dimensión.
type VariantCombination struct {
	SKU            string                  `json:"sku,omitempty"`
	Attributes     map[string]VariantValue `json:"attributes"`
	Price          decimal.Decimal         `json:"price"`
	OriginalPrice  decimal.NullDecimal     `json:"original_price"`
	WholesalePrice decimal.NullDecimal     `json:"wholesale_price"`
	InStock        bool                    `json:"in_stock"`
	Quantity       *int                    `json:"quantity"`
}

// VariantSet combinaciones del producto tal como las reporta el backend.
type VariantSet struct {
	Success      bool
	IsSimple     bool
	Combinations []VariantCombination
}

// Usable indica si las combinaciones son autoritativas para el producto.
func (s VariantSet) Usable() bool {
	return s.Success && !s.IsSimple && len(s.Combinations) > 0
}

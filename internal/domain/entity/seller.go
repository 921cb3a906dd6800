package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus estado de moderación de un producto del vendedor.
type ProductStatus string

const (
	StatusPendingApproval ProductStatus = "pending_approval"
	StatusApproved        ProductStatus = "approved"
	StatusActive          ProductStatus = "active"
	StatusRejected        ProductStatus = "rejected"
	StatusDeleted         ProductStatus = "deleted"
	StatusDraft           ProductStatus = "draft"
)

// SellerProduct producto visto desde el panel del vendedor.
type SellerProduct struct {
	Product
	Status          ProductStatus    `json:"status"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	Characteristics []Characteristic `json:"characteristics,omitempty"`
	VariantOptions  []VariantOption  `json:"variant_options,omitempty"`
	ViewsCount      int              `json:"views_count"`
	SalesCount      int              `json:"sales_count"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Characteristic par nombre/valor libre ("Material: algodón").
type Characteristic struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariantOption opción de variante declarada por el vendedor al publicar.
// Colors solo viene en la opción de color.
type VariantOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
	Colors []Color  `json:"colors,omitempty"`
}

// ProductSubmission datos que el vendedor envía a moderación.
type ProductSubmission struct {
	ProductID       ID
	ClientID        ID
	Name            string
	Description     string
	CategoryID      ID
	RetailPrice     decimal.Decimal
	DiscountPrice   decimal.NullDecimal
	WholesalePrice  decimal.NullDecimal
	StockQuantity   int
	SKU             string
	Characteristics []Characteristic
	ImageURLs       []string
	ColorIDs        []ID
	VariantOptions  []VariantOption
}

// ProductDraft formulario de producto sin terminar, guardado del lado del BFF.
type ProductDraft struct {
	ID        string
	ClientID  ID
	Title     string
	Payload   []byte // JSON del formulario
	Price     decimal.NullDecimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid verifica que el estado sea uno de los conocidos.
func (s ProductStatus) IsValid() bool {
	switch s {
	case StatusPendingApproval, StatusApproved, StatusActive, StatusRejected, StatusDeleted, StatusDraft:
		return true
	default:
		return false
	}
}

// CanTransitionTo indica si el paso de s a next está permitido. Cualquier edición o reenvío
// vuelve a moderación (pending_approval); deleted solo admite el reenvío.
func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	switch s {
	case StatusDraft:
		return next == StatusPendingApproval || next == StatusDeleted
	case StatusPendingApproval:
		return next == StatusPendingApproval ||
			next == StatusApproved ||
			next == StatusRejected ||
			next == StatusDeleted
	case StatusApproved:
		return next == StatusActive ||
			next == StatusPendingApproval ||
			next == StatusDeleted
	case StatusActive:
		return next == StatusPendingApproval || next == StatusDeleted
	case StatusRejected:
		return next == StatusPendingApproval || next == StatusDeleted
	case StatusDeleted:
		return next == StatusPendingApproval
	default:
		return false
	}
}

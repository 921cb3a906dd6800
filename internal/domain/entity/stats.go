package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellerStats estadísticas del vendedor devueltas por el backend.
type SellerStats struct {
	TotalSales      int
	TotalRevenue    decimal.Decimal
	TotalProfit     decimal.Decimal
	AverageRating   decimal.Decimal
	TotalViews      int
	TotalOrders     int
	PendingOrders   int
	CompletedOrders int
	TopProducts     []TopProduct
	SalesByMonth    []MonthlySales
	RecentOrders    []SellerOrder
}

// TopProduct producto más vendido.
type TopProduct struct {
	ID      ID
	Name    string
	Sales   int
	Revenue decimal.Decimal
	Image   string
}

// MonthlySales ventas agregadas por mes ("2024-05").
type MonthlySales struct {
	Month   string
	Sales   int
	Revenue decimal.Decimal
}

// SellerOrder pedido reciente de un producto del vendedor.
type SellerOrder struct {
	ID          ID
	ProductName string
	Amount      decimal.Decimal
	Status      string
	CreatedAt   time.Time
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// TopProductDTO producto más vendido.
type TopProductDTO struct {
	ID      entity.ID       `json:"id"`
	Name    string          `json:"name"`
	Sales   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
	Image   string          `json:"image,omitempty"`
}

// MonthlySalesDTO ventas de un mes.
type MonthlySalesDTO struct {
	Month   string          `json:"month"`
	Sales   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RecentOrderDTO pedido reciente.
type RecentOrderDTO struct {
	ID          entity.ID       `json:"id"`
	ProductName string          `json:"product_name"`
	Amount      decimal.Decimal `json:"amount"`
	AmountText  string          `json:"amount_text"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SellerAnalyticsDTO panel de analítica del vendedor.
type SellerAnalyticsDTO struct {
	TotalSales        int               `json:"total_sales"`
	TotalRevenue      decimal.Decimal   `json:"total_revenue"`
	TotalProfit       decimal.Decimal   `json:"total_profit"`
	AverageRating     decimal.Decimal   `json:"average_rating"`
	TotalViews        int               `json:"total_views"`
	TotalOrders       int               `json:"total_orders"`
	PendingOrders     int               `json:"pending_orders"`
	CompletedOrders   int               `json:"completed_orders"`
	AverageOrderValue decimal.Decimal   `json:"average_order_value"`
	CompletionRate    decimal.Decimal   `json:"completion_rate"` // % de pedidos completados o entregados
	TopProducts       []TopProductDTO   `json:"top_products"`
	SalesByMonth      []MonthlySalesDTO `json:"sales_by_month"`
	RecentOrders      []RecentOrderDTO  `json:"recent_orders"`
}

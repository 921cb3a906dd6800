package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/repository"
	"github.com/renexpress/storefront-api/pkg/money"
)

var hundred = decimal.NewFromInt(100)

// Estados de pedido que cuentan como completados.
var completedStatuses = map[string]struct{}{
	"completed": {},
	"delivered": {},
}

// SellerReportGenerator genera el PDF del panel de analítica.
type SellerReportGenerator interface {
	GenerateSellerReport(ctx context.Context, client *entity.Client, stats *entity.SellerStats, generatedAt time.Time) ([]byte, error)
}

// AnalyticsUseCase panel de analítica del vendedor y su exportación a PDF.
type AnalyticsUseCase struct {
	stats  repository.SellerStatsSource
	report SellerReportGenerator
	now    func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso. report puede ser nil (sin exportación).
func NewAnalyticsUseCase(stats repository.SellerStatsSource, report SellerReportGenerator) *AnalyticsUseCase {
	return &AnalyticsUseCase{stats: stats, report: report, now: time.Now}
}

// Dashboard estadísticas del vendedor con los indicadores derivados.
func (uc *AnalyticsUseCase) Dashboard(ctx context.Context, clientID entity.ID) (*dto.SellerAnalyticsDTO, error) {
	if clientID.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	stats, err := uc.stats.MyStats(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return toAnalyticsDTO(stats), nil
}

// Report genera el PDF con las mismas estadísticas del panel.
func (uc *AnalyticsUseCase) Report(ctx context.Context, client *entity.Client) ([]byte, error) {
	if client == nil || client.ID.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if uc.report == nil {
		return nil, fmt.Errorf("reporte PDF no configurado: %w", domain.ErrUnavailable)
	}
	stats, err := uc.stats.MyStats(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.report.GenerateSellerReport(ctx, client, stats, uc.now())
	if err != nil {
		return nil, fmt.Errorf("generar reporte: %w", err)
	}
	return pdf, nil
}

func toAnalyticsDTO(s *entity.SellerStats) *dto.SellerAnalyticsDTO {
	out := &dto.SellerAnalyticsDTO{
		TotalSales:        s.TotalSales,
		TotalRevenue:      s.TotalRevenue,
		TotalProfit:       s.TotalProfit,
		AverageRating:     s.AverageRating,
		TotalViews:        s.TotalViews,
		TotalOrders:       s.TotalOrders,
		PendingOrders:     s.PendingOrders,
		CompletedOrders:   s.CompletedOrders,
		AverageOrderValue: decimal.Zero,
		CompletionRate:    decimal.Zero,
		TopProducts:       make([]dto.TopProductDTO, 0, len(s.TopProducts)),
		SalesByMonth:      make([]dto.MonthlySalesDTO, 0, len(s.SalesByMonth)),
		RecentOrders:      make([]dto.RecentOrderDTO, 0, len(s.RecentOrders)),
	}
	if s.TotalOrders > 0 {
		orders := decimal.NewFromInt(int64(s.TotalOrders))
		out.AverageOrderValue = s.TotalRevenue.Div(orders).Round(2)
		out.CompletionRate = decimal.NewFromInt(int64(completedCount(s))).Mul(hundred).Div(orders).Round(1)
	}
	for _, p := range s.TopProducts {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ID: p.ID, Name: p.Name, Sales: p.Sales, Revenue: p.Revenue, Image: p.Image,
		})
	}
	for _, m := range s.SalesByMonth {
		out.SalesByMonth = append(out.SalesByMonth, dto.MonthlySalesDTO{Month: m.Month, Sales: m.Sales, Revenue: m.Revenue})
	}
	for _, o := range s.RecentOrders {
		out.RecentOrders = append(out.RecentOrders, dto.RecentOrderDTO{
			ID:          o.ID,
			ProductName: o.ProductName,
			Amount:      o.Amount,
			AmountText:  money.Format(o.Amount),
			Status:      o.Status,
			CreatedAt:   o.CreatedAt,
		})
	}
	return out
}

// completedCount usa el contador del backend; si no lo informa, cuenta los pedidos recientes
// completados o entregados.
func completedCount(s *entity.SellerStats) int {
	if s.CompletedOrders > 0 {
		return min(s.CompletedOrders, s.TotalOrders)
	}
	n := 0
	for _, o := range s.RecentOrders {
		if _, ok := completedStatuses[strings.ToLower(o.Status)]; ok {
			n++
		}
	}
	return min(n, s.TotalOrders)
}

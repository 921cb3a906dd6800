package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

func TestGenerateSellerReport_DevuelvePDF(t *testing.T) {
	g := NewSellerReportGenerator("RenExpress", "https://seller.example.com/analytics")
	stats := &entity.SellerStats{
		TotalSales:   3,
		TotalRevenue: decimal.NewFromInt(4500),
		TopProducts:  []entity.TopProduct{{ID: "1", Name: "Camisa", Sales: 2, Revenue: decimal.NewFromInt(3000)}},
		SalesByMonth: []entity.MonthlySales{{Month: "2024-05", Sales: 3, Revenue: decimal.NewFromInt(4500)}},
		RecentOrders: []entity.SellerOrder{{ID: "5", ProductName: "Camisa", Amount: decimal.NewFromInt(1500), Status: "pending"}},
	}

	out, err := g.GenerateSellerReport(context.Background(), &entity.Client{ID: "42", FullName: "Ana"}, stats, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe empezar con la cabecera PDF")
}

func TestGenerateSellerReport_SinDatos(t *testing.T) {
	g := NewSellerReportGenerator("", "")
	out, err := g.GenerateSellerReport(context.Background(), nil, nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00 RUB", formatAmount(decimal.Zero))
	assert.Equal(t, "999.90 RUB", formatAmount(decimal.RequireFromString("999.9")))
	assert.Equal(t, "1 234 567.50 RUB", formatAmount(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-1 500.00 RUB", formatAmount(decimal.NewFromInt(-1500)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "Руба…", truncate("Рубашка", 5))
}

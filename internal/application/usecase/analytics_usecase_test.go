package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renexpress/storefront-api/internal/application/usecase"
	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
)

type fakeStats struct {
	stats *entity.SellerStats
	err   error
	asked entity.ID
}

func (f *fakeStats) MyStats(_ context.Context, clientID entity.ID) (*entity.SellerStats, error) {
	f.asked = clientID
	return f.stats, f.err
}

type fakeReport struct {
	client *entity.Client
	err    error
}

func (f *fakeReport) GenerateSellerReport(_ context.Context, client *entity.Client, _ *entity.SellerStats, _ time.Time) ([]byte, error) {
	f.client = client
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestDashboard_IndicadoresDerivados(t *testing.T) {
	src := &fakeStats{stats: &entity.SellerStats{
		TotalRevenue: d("1000"),
		TotalOrders:  3,
		RecentOrders: []entity.SellerOrder{
			{ID: "1", Status: "completed", Amount: d("500")},
			{ID: "2", Status: "Delivered", Amount: d("300")},
			{ID: "3", Status: "pending", Amount: d("200")},
		},
		TopProducts: []entity.TopProduct{{ID: "7", Name: "Camisa", Sales: 4}},
	}}
	uc := usecase.NewAnalyticsUseCase(src, nil)

	res, err := uc.Dashboard(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, entity.ID("42"), src.asked)
	assert.True(t, res.AverageOrderValue.Equal(d("333.33")), res.AverageOrderValue.String())
	assert.True(t, res.CompletionRate.Equal(d("66.7")), res.CompletionRate.String())
	require.Len(t, res.RecentOrders, 3)
	assert.Contains(t, res.RecentOrders[0].AmountText, "₽")
	require.Len(t, res.TopProducts, 1)
	assert.NotNil(t, res.SalesByMonth)
}

func TestDashboard_ContadorDelBackendTienePrioridad(t *testing.T) {
	src := &fakeStats{stats: &entity.SellerStats{TotalOrders: 4, CompletedOrders: 1}}
	uc := usecase.NewAnalyticsUseCase(src, nil)

	res, err := uc.Dashboard(context.Background(), "42")
	require.NoError(t, err)
	assert.True(t, res.CompletionRate.Equal(d("25")))
}

func TestDashboard_SinPedidos(t *testing.T) {
	uc := usecase.NewAnalyticsUseCase(&fakeStats{stats: &entity.SellerStats{}}, nil)

	res, err := uc.Dashboard(context.Background(), "42")
	require.NoError(t, err)
	assert.True(t, res.AverageOrderValue.IsZero())
	assert.True(t, res.CompletionRate.IsZero())
}

func TestDashboard_Errores(t *testing.T) {
	uc := usecase.NewAnalyticsUseCase(&fakeStats{err: domain.ErrUpstream}, nil)

	_, err := uc.Dashboard(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Dashboard(context.Background(), "42")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestReport(t *testing.T) {
	report := &fakeReport{}
	uc := usecase.NewAnalyticsUseCase(&fakeStats{stats: &entity.SellerStats{}}, report)
	client := &entity.Client{ID: "42", FullName: "Ana"}

	pdf, err := uc.Report(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(pdf))
	assert.Same(t, client, report.client)
}

func TestReport_Errores(t *testing.T) {
	_, err := usecase.NewAnalyticsUseCase(&fakeStats{}, nil).Report(context.Background(), &entity.Client{ID: "42"})
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = usecase.NewAnalyticsUseCase(&fakeStats{}, &fakeReport{}).Report(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	boom := errors.New("fuente rota")
	_, err = usecase.NewAnalyticsUseCase(&fakeStats{stats: &entity.SellerStats{}}, &fakeReport{err: boom}).
		Report(context.Background(), &entity.Client{ID: "42"})
	assert.ErrorIs(t, err, boom)
}

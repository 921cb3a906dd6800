package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/infrastructure/postgres"
	"github.com/renexpress/storefront-api/pkg/config"
)

// newTestRepo requiere TEST_DATABASE_URL; sin ella el test se omite.
func newTestRepo(t *testing.T) *postgres.DraftRepo {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	require.NoError(t, postgres.RunMigrations(dsn, nil))

	pool, err := postgres.NewPool(context.Background(), config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM product_drafts WHERE client_id LIKE 'test-%'`)
		pool.Close()
	})
	return postgres.NewDraftRepository(pool)
}

func TestDraftRepo_CicloCompleto(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	d := &entity.ProductDraft{
		ClientID: "test-1",
		Title:    "Camisa",
		Payload:  []byte(`{"name":"Camisa"}`),
		Price:    decimal.NewNullDecimal(decimal.RequireFromString("1500.50")),
	}
	require.NoError(t, repo.Save(ctx, d))
	require.NotEmpty(t, d.ID)

	got, err := repo.GetByID(ctx, "test-1", d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Camisa", got.Title)
	assert.True(t, got.Price.Decimal.Equal(decimal.RequireFromString("1500.5")))
	assert.JSONEq(t, `{"name":"Camisa"}`, string(got.Payload))

	other, err := repo.GetByID(ctx, "test-2", d.ID)
	require.NoError(t, err)
	assert.Nil(t, other, "un cliente no ve borradores ajenos")

	d.Title = "Camisa azul"
	require.NoError(t, repo.Save(ctx, d))
	list, err := repo.ListByClient(ctx, "test-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Camisa azul", list[0].Title)

	stolen := *d
	stolen.ClientID = "test-2"
	assert.ErrorIs(t, repo.Save(ctx, &stolen), domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "test-1", d.ID))
	assert.ErrorIs(t, repo.Delete(ctx, "test-1", d.ID), domain.ErrNotFound)
}

func TestDraftRepo_IDInvalido(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, "test-1", "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, repo.Save(ctx, &entity.ProductDraft{ID: "x", ClientID: "test-1", Payload: []byte(`{}`)}), domain.ErrInvalidInput)
}

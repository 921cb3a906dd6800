package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/infrastructure/redis"
	"github.com/renexpress/storefront-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func sampleSnapshot() *entity.CatalogSnapshot {
	stock := 3
	return &entity.CatalogSnapshot{
		Categories: []entity.Category{{ID: "1", Name: "Ropa"}, {ID: "2", Name: "Camisas", ParentID: "1"}},
		Products: []entity.Product{{
			ID:            "10",
			Name:          "Camisa",
			CategoryID:    "2",
			RetailPrice:   decimal.RequireFromString("1500.50"),
			DiscountPrice: decimal.NewNullDecimal(decimal.NewFromInt(1200)),
			StockQuantity: &stock,
		}},
		Colors:    []entity.Color{{ID: "5", Name: "Rojo", HexCode: "#f00"}},
		FetchedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Snapshot
// ──────────────────────────────────────────────────────────────────────────────

func TestNewClient_ErrorSiNoHayServidor(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := redis.NewClient(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestSnapshot_MissDevuelveNil(t *testing.T) {
	_, client := newTestRedis(t)
	cache := redis.NewCatalogCache(client, "test", time.Hour, nil)

	snap, err := cache.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshot_GuardarYLeer(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := redis.NewCatalogCache(client, "test", time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, cache.SetSnapshot(ctx, sampleSnapshot()))
	assert.True(t, mr.Exists("test:catalog:snapshot"))
	assert.Equal(t, time.Hour, mr.TTL("test:catalog:snapshot"))

	snap, err := cache.GetSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Categories, 2)
	assert.Equal(t, entity.ID("1"), snap.Categories[1].ParentID)
	require.Len(t, snap.Products, 1)
	assert.True(t, snap.Products[0].RetailPrice.Equal(decimal.RequireFromString("1500.5")))
	assert.True(t, snap.Products[0].HasDiscount())
	assert.Equal(t, 3, *snap.Products[0].StockQuantity)
	assert.True(t, snap.FetchedAt.Equal(sampleSnapshot().FetchedAt))
}

func TestSnapshot_ExpiraConTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := redis.NewCatalogCache(client, "test", time.Minute, nil)
	ctx := context.Background()

	require.NoError(t, cache.SetSnapshot(ctx, sampleSnapshot()))
	mr.FastForward(2 * time.Minute)

	snap, err := cache.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshot_IlegibleSeDescarta(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := redis.NewCatalogCache(client, "test", time.Hour, nil)
	require.NoError(t, mr.Set("test:catalog:snapshot", "{roto"))

	snap, err := cache.GetSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.False(t, mr.Exists("test:catalog:snapshot"))
}

func TestSnapshot_Invalidate(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := redis.NewCatalogCache(client, "test", time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, cache.SetSnapshot(ctx, sampleSnapshot()))
	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists("test:catalog:snapshot"))
}

func TestSnapshot_RedisCaidoDevuelveError(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := redis.NewCatalogCache(client, "test", time.Hour, nil)
	mr.Close()

	_, err := cache.GetSnapshot(context.Background())
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fichas de producto
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_MGetIgnoraMisses(t *testing.T) {
	_, client := newTestRedis(t)
	cache := redis.NewCatalogCache(client, "test", time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, cache.SetProducts(ctx, sampleSnapshot().Products))

	got, err := cache.GetProducts(ctx, []entity.ID{"10", "11"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Camisa", got["10"].Name)
}

func TestProducts_IDNoCoincideSeBorra(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := redis.NewCatalogCache(client, "test", time.Hour, nil)
	require.NoError(t, mr.Set("test:product:11", `{"id":10,"name":"Otra"}`))

	got, err := cache.GetProducts(context.Background(), []entity.ID{"11"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, mr.Exists("test:product:11"))
}

func TestProducts_Delete(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := redis.NewCatalogCache(client, "test", time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, cache.SetProducts(ctx, sampleSnapshot().Products))
	require.NoError(t, cache.DeleteProducts(ctx, []entity.ID{"10"}))
	assert.False(t, mr.Exists("test:product:10"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Almacén del limitador
// ──────────────────────────────────────────────────────────────────────────────

func TestLimiterStorage_GetSetExpira(t *testing.T) {
	mr, client := newTestRedis(t)
	st := redis.NewLimiterStorage(client, "test")

	val, err := st.Get("auth:1.2.3.4")
	require.NoError(t, err)
	assert.Nil(t, val, "clave inexistente")

	require.NoError(t, st.Set("auth:1.2.3.4", []byte("x"), time.Minute))
	assert.True(t, mr.Exists("test:rl:auth:1.2.3.4"))
	val, err = st.Get("auth:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), val)

	mr.FastForward(61 * time.Second)
	val, err = st.Get("auth:1.2.3.4")
	require.NoError(t, err)
	assert.Nil(t, val, "la ventana expira")
}

func TestLimiterStorage_ResetSoloPrefijo(t *testing.T) {
	mr, client := newTestRedis(t)
	st := redis.NewLimiterStorage(client, "test")
	ctx := context.Background()

	require.NoError(t, st.Set("a", []byte("1"), time.Minute))
	require.NoError(t, st.Set("b", []byte("2"), 0))
	require.NoError(t, client.Set(ctx, "test:catalog:snapshot", "{}", 0).Err())

	require.NoError(t, st.Reset())
	assert.False(t, mr.Exists("test:rl:a"))
	assert.False(t, mr.Exists("test:rl:b"))
	assert.True(t, mr.Exists("test:catalog:snapshot"))

	require.NoError(t, st.Delete("a"))
	assert.NoError(t, st.Close())
}

func TestLimiterStorage_RedisCaido(t *testing.T) {
	mr, client := newTestRedis(t)
	st := redis.NewLimiterStorage(client, "test")
	mr.Close()

	_, err := st.Get("k")
	assert.Error(t, err)
	assert.Error(t, st.Set("k", []byte("1"), time.Minute))
}

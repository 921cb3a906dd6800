package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/repository"
	"github.com/renexpress/storefront-api/pkg/logger"
)

var (
	_ repository.CatalogCache = (*CatalogCache)(nil)
	_ repository.ProductCache = (*CatalogCache)(nil)
)

// CatalogCache guarda el snapshot del catálogo como un único JSON y las fichas de producto
// en claves individuales. ttl es el tiempo de retención en Redis, no la frescura.
type CatalogCache struct {
	client *goredis.Client
	keys   keyspace
	ttl    time.Duration
	log    *logger.Logger
}

// NewCatalogCache construye la caché.
func NewCatalogCache(client *goredis.Client, prefix string, ttl time.Duration, log *logger.Logger) *CatalogCache {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogCache{client: client, keys: keyspace(prefix), ttl: ttl, log: log.Component("redis_cache")}
}

func (r *CatalogCache) snapshotKey() string { return r.keys.key("catalog", "snapshot") }

func (r *CatalogCache) productKey(id entity.ID) string { return r.keys.key("product", id.String()) }

// GetSnapshot devuelve (nil, nil) si no hay snapshot o si el JSON guardado no es legible.
func (r *CatalogCache) GetSnapshot(ctx context.Context) (*entity.CatalogSnapshot, error) {
	data, err := r.client.Get(ctx, r.snapshotKey()).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get snapshot: %w", err)
	}

	var snap entity.CatalogSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		r.log.Warn().Err(err).Msg("snapshot ilegible en caché, se descarta")
		if err := r.client.Del(ctx, r.snapshotKey()).Err(); err != nil {
			r.log.Warn().Err(err).Msg("redis del snapshot")
		}
		return nil, nil
	}
	return &snap, nil
}

// SetSnapshot reemplaza el snapshot completo.
func (r *CatalogCache) SetSnapshot(ctx context.Context, snapshot *entity.CatalogSnapshot) error {
	if snapshot == nil {
		return nil
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("serializar snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.snapshotKey(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

// Invalidate borra el snapshot. Las fichas individuales expiran solas.
func (r *CatalogCache) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, r.snapshotKey()).Err(); err != nil {
		return fmt.Errorf("redis del snapshot: %w", err)
	}
	return nil
}

// GetProducts lee varias fichas con un MGET. Los misses y los valores ilegibles se omiten.
func (r *CatalogCache) GetProducts(ctx context.Context, ids []entity.ID) (map[entity.ID]entity.Product, error) {
	result := make(map[entity.ID]entity.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.productKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		r.log.Warn().Err(err).Msg("redis MGET")
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	for i, val := range values {
		data, err := redisValueToBytes(val)
		if err != nil {
			r.log.Warn().Err(err).Str("key", keys[i]).Msg("valor de caché inesperado")
			continue
		}
		if data == nil {
			continue
		}
		var p entity.Product
		if err := json.Unmarshal(data, &p); err != nil {
			r.log.Warn().Err(err).Str("key", keys[i]).Msg("ficha ilegible en caché")
			continue
		}
		if p.ID != ids[i] {
			r.log.Warn().Str("key", keys[i]).Str("product_id", p.ID.String()).Msg("ID de caché no coincide")
			_ = r.client.Del(ctx, keys[i]).Err()
			continue
		}
		result[ids[i]] = p
	}
	return result, nil
}

// SetProducts escribe las fichas en un pipeline. Los errores se registran y no se propagan.
func (r *CatalogCache) SetProducts(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	pipe := r.client.Pipeline()
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			r.log.Warn().Err(err).Str("product_id", p.ID.String()).Msg("serializar ficha")
			continue
		}
		pipe.Set(ctx, r.productKey(p.ID), data, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Warn().Err(err).Msg("redis pipeline")
	}
	return nil
}

// DeleteProducts borra fichas por ID.
func (r *CatalogCache) DeleteProducts(ctx context.Context, ids []entity.ID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.productKey(id)
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.log.Warn().Err(err).Msg("redis DEL")
	}
	return nil
}

// redisValueToBytes convierte un valor de MGET; nil es un miss.
func redisValueToBytes(val any) ([]byte, error) {
	switch v := val.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("tipo inesperado %T", val)
	}
}

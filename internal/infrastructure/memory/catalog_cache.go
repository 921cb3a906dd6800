// Package memory implementa la caché del catálogo en proceso, usada cuando Redis no está configurado.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/repository"
)

// MaxProducts fichas retenidas; al superarlo se descartan las menos usadas.
const MaxProducts = 10_000

var (
	_ repository.CatalogCache = (*CatalogCache)(nil)
	_ repository.ProductCache = (*CatalogCache)(nil)
)

// CatalogCache snapshot y fichas en memoria. ttl es el tiempo de retención; las fichas vencidas
// salen del LRU solas.
type CatalogCache struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	snapshot *entity.CatalogSnapshot
	storedAt time.Time

	products *expirable.LRU[entity.ID, entity.Product]
}

// NewCatalogCache construye la caché.
func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		ttl:      ttl,
		now:      time.Now,
		products: expirable.NewLRU[entity.ID, entity.Product](MaxProducts, nil, ttl),
	}
}

// WithClock reemplaza el reloj del snapshot (tests).
func (c *CatalogCache) WithClock(now func() time.Time) *CatalogCache {
	c.now = now
	return c
}

func (c *CatalogCache) expired(storedAt time.Time) bool {
	return c.ttl > 0 && c.now().Sub(storedAt) >= c.ttl
}

func (c *CatalogCache) GetSnapshot(_ context.Context) (*entity.CatalogSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snapshot == nil || c.expired(c.storedAt) {
		return nil, nil
	}
	return c.snapshot, nil
}

func (c *CatalogCache) SetSnapshot(_ context.Context, snapshot *entity.CatalogSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot
	c.storedAt = c.now()
	return nil
}

func (c *CatalogCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	return nil
}

func (c *CatalogCache) GetProducts(_ context.Context, ids []entity.ID) (map[entity.ID]entity.Product, error) {
	out := make(map[entity.ID]entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := c.products.Get(id); ok {
			out[id] = p
		}
	}
	return out, nil
}

func (c *CatalogCache) SetProducts(_ context.Context, products []entity.Product) error {
	for _, p := range products {
		c.products.Add(p.ID, p)
	}
	return nil
}

func (c *CatalogCache) DeleteProducts(_ context.Context, ids []entity.ID) error {
	for _, id := range ids {
		c.products.Remove(id)
	}
	return nil
}

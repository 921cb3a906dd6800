// Package redis implementa la caché compartida del catálogo y el almacén del limitador de peticiones sobre go-redis.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/renexpress/storefront-api/pkg/config"
)

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   2,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// keyspace arma claves con el prefijo configurado ("storefront:catalog:snapshot").
type keyspace string

func (k keyspace) key(parts ...string) string {
	s := string(k)
	for _, p := range parts {
		if s == "" {
			s = p
			continue
		}
		s += ":" + p
	}
	return s
}

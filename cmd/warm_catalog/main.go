// warm_catalog descarga el catálogo del marketplace y lo deja en la caché compartida (Redis),
// para que las instancias de la API arranquen con el snapshot caliente.
//
// Uso: go run ./cmd/warm_catalog [-invalidate]
// Con -invalidate borra primero el snapshot vigente.
// Sale con código 1 si el catálogo no se pudo descargar.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/renexpress/storefront-api/internal/application/storefront"
	"github.com/renexpress/storefront-api/internal/domain/repository"
	infrakafka "github.com/renexpress/storefront-api/internal/infrastructure/kafka"
	"github.com/renexpress/storefront-api/internal/infrastructure/marketplace"
	infraredis "github.com/renexpress/storefront-api/internal/infrastructure/redis"
	"github.com/renexpress/storefront-api/pkg/config"
	"github.com/renexpress/storefront-api/pkg/logger"
)

func main() {
	invalidate := flag.Bool("invalidate", false, "borrar el snapshot vigente antes de descargar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Redis.Enabled {
		fmt.Fprintln(os.Stderr, "REDIS_ENABLED=false: no hay caché compartida que precargar")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Marketplace.Timeout)
	defer cancel()

	rdb, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a Redis: %v\n", err)
		os.Exit(1)
	}
	defer rdb.Close()
	cache := infraredis.NewCatalogCache(rdb, cfg.Redis.Prefix, cfg.Catalog.StaleTTL, log)

	if *invalidate {
		if err := cache.Invalidate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Invalidar snapshot: %v\n", err)
			os.Exit(1)
		}
	}

	var events repository.EventPublisher = infrakafka.Noop{}
	if cfg.Kafka.Enabled {
		producer := infrakafka.NewProducer(cfg.Kafka, log)
		defer producer.Close()
		events = producer
	}

	svc := storefront.NewCatalogService(marketplace.NewClient(cfg.Marketplace, log), cache, events, storefront.CatalogConfig{
		FreshTTL: cfg.Catalog.CacheTTL,
		StaleTTL: cfg.Catalog.StaleTTL,
	}, log)

	snap, err := svc.Refresh(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Descargar catálogo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Catálogo precargado: %d categorías, %d productos, %d colores\n",
		len(snap.Categories), len(snap.Products), len(snap.Colors))
}

// Package storefront sirve el catálogo público: snapshot cacheado, navegación por categorías y portada.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/catalog"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/event"
	"github.com/renexpress/storefront-api/internal/domain/repository"
	"github.com/renexpress/storefront-api/pkg/logger"
)

const (
	defaultFreshTTL = 5 * time.Minute
	defaultStaleTTL = time.Hour
	refreshTimeout  = 30 * time.Second
	refreshKey      = "catalog"
)

// View snapshot con su árbol de categorías ya construido. Solo lectura.
type View struct {
	Snapshot *entity.CatalogSnapshot
	Tree     *catalog.Tree
}

// Provider fuente de vistas del catálogo (la implementa CatalogService).
type Provider interface {
	View(ctx context.Context) (*View, error)
}

// CatalogConfig tiempos de frescura del snapshot.
type CatalogConfig struct {
	FreshTTL time.Duration // hasta aquí se sirve sin refrescar
	StaleTTL time.Duration // hasta aquí se sirve y se refresca en segundo plano
}

// CatalogService mantiene el snapshot del catálogo: lo lee de caché, lo refresca en segundo
// plano cuando envejece y conserva el último bueno si el backend falla.
type CatalogService struct {
	source repository.CatalogSource
	cache  repository.CatalogCache
	events repository.EventPublisher
	cfg    CatalogConfig
	log    *logger.Logger
	now    func() time.Time

	group      singleflight.Group
	refreshing atomic.Bool
	lastGood   atomic.Pointer[entity.CatalogSnapshot]
	view       atomic.Pointer[View]
}

// NewCatalogService construye el servicio. events puede ser nil.
func NewCatalogService(
	source repository.CatalogSource,
	cache repository.CatalogCache,
	events repository.EventPublisher,
	cfg CatalogConfig,
	log *logger.Logger,
) *CatalogService {
	if cfg.FreshTTL <= 0 {
		cfg.FreshTTL = defaultFreshTTL
	}
	if cfg.StaleTTL < cfg.FreshTTL {
		cfg.StaleTTL = max(defaultStaleTTL, cfg.FreshTTL)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogService{
		source: source,
		cache:  cache,
		events: events,
		cfg:    cfg,
		log:    log.Component("catalog"),
		now:    time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *CatalogService) WithClock(now func() time.Time) *CatalogService {
	s.now = now
	return s
}

// Snapshot devuelve el catálogo vigente. Fresco: tal cual. Viejo: tal cual y refresco en segundo plano.
// Sin caché: descarga; si la descarga falla se sirve el último snapshot bueno conocido.
func (s *CatalogService) Snapshot(ctx context.Context) (*entity.CatalogSnapshot, error) {
	cached, err := s.cache.GetSnapshot(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("caché del catálogo no disponible")
		cached = nil
	}
	if cached == nil {
		cached = s.lastGood.Load()
	}

	if cached != nil {
		age := cached.Age(s.now())
		switch {
		case age < s.cfg.FreshTTL:
			return cached, nil
		case age < s.cfg.StaleTTL:
			s.refreshInBackground()
			return cached, nil
		}
	}

	fresh, err := s.refresh(ctx)
	if err != nil {
		if cached != nil {
			s.log.Warn().Err(err).Dur("age", cached.Age(s.now())).Msg("backend caído, se sirve el último catálogo")
			return cached, nil
		}
		return nil, errors.Join(domain.ErrUnavailable, err)
	}
	return fresh, nil
}

// View devuelve el snapshot con su árbol. El árbol se reutiliza mientras el snapshot no cambie.
func (s *CatalogService) View(ctx context.Context) (*View, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if v := s.view.Load(); v != nil && v.Snapshot.FetchedAt.Equal(snap.FetchedAt) {
		return v, nil
	}
	v := &View{Snapshot: snap, Tree: catalog.NewTree(snap.Categories)}
	s.view.Store(v)
	return v, nil
}

// Refresh fuerza la descarga y la guarda en caché.
func (s *CatalogService) Refresh(ctx context.Context) (*entity.CatalogSnapshot, error) {
	return s.refresh(ctx)
}

func (s *CatalogService) refreshInBackground() {
	if !s.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer s.refreshing.Store(false)
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if _, err := s.refresh(ctx); err != nil {
			s.log.Warn().Err(err).Msg("refresco en segundo plano fallido")
		}
	}()
}

// refresh agrupa descargas concurrentes en una sola. La descarga no depende del contexto del
// primer llamador: si ese cliente se va, los demás siguen esperando el resultado.
func (s *CatalogService) refresh(ctx context.Context) (*entity.CatalogSnapshot, error) {
	ch := s.group.DoChan(refreshKey, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refreshTimeout)
		defer cancel()
		return s.fetch(fetchCtx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entity.CatalogSnapshot), nil
	}
}

// fetch descarga productos, categorías y colores en paralelo. Un fallo de colores no es fatal.
func (s *CatalogService) fetch(ctx context.Context) (*entity.CatalogSnapshot, error) {
	start := s.now()
	var (
		categories []entity.Category
		products   []entity.Product
		colors     []entity.Color
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if categories, err = s.source.Categories(gctx); err != nil {
			return fmt.Errorf("categorías: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if products, err = s.source.Products(gctx); err != nil {
			return fmt.Errorf("productos: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if colors, err = s.source.Colors(gctx); err != nil {
			s.log.Warn().Err(err).Msg("colores no disponibles, se sigue sin filtro de color")
			colors = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &entity.CatalogSnapshot{
		Categories: catalog.Flatten(categories),
		Products:   products,
		Colors:     colors,
		FetchedAt:  s.now(),
	}
	if snap.Products == nil {
		snap.Products = []entity.Product{}
	}
	if snap.Colors == nil {
		snap.Colors = []entity.Color{}
	}

	s.lastGood.Store(snap)
	if err := s.cache.SetSnapshot(ctx, snap); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo guardar el catálogo en caché")
	}

	elapsed := s.now().Sub(start)
	s.log.Info().
		Int("categories", len(snap.Categories)).
		Int("products", len(snap.Products)).
		Int("colors", len(snap.Colors)).
		Dur("elapsed", elapsed).
		Msg("catálogo actualizado")
	s.publish(ctx, event.New(event.TypeCatalogRefreshed, event.CatalogRefreshed{
		Categories: len(snap.Categories),
		Products:   len(snap.Products),
		Colors:     len(snap.Colors),
		ElapsedMS:  elapsed.Milliseconds(),
	}))
	return snap, nil
}

func (s *CatalogService) publish(ctx context.Context, ev event.Envelope) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev.Type, ev); err != nil {
		s.log.Warn().Err(err).Str("type", ev.Type).Msg("no se pudo publicar el evento")
	}
}

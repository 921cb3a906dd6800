package storefront_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renexpress/storefront-api/internal/application/storefront"
	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeSource struct {
	mu          sync.Mutex
	categories  []entity.Category
	products    []entity.Product
	colors      []entity.Color
	productsErr error
	colorsErr   error
	gate        chan struct{}
	calls       atomic.Int32
}

func (f *fakeSource) Categories(ctx context.Context) ([]entity.Category, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.categories, nil
}

func (f *fakeSource) Products(context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products, f.productsErr
}

func (f *fakeSource) Colors(context.Context) ([]entity.Color, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.colors, f.colorsErr
}

func (f *fakeSource) setProductsErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productsErr = err
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newSource() *fakeSource {
	return &fakeSource{
		categories: []entity.Category{
			{ID: "1", Name: "Ropa", Children: []entity.Category{{ID: "2", Name: "Camisas"}}},
		},
		products: []entity.Product{{ID: "10", Name: "Camisa", CategoryID: "2"}},
		colors:   []entity.Color{{ID: "5", Name: "Rojo"}},
	}
}

func newService(src *fakeSource, clk *clock) *storefront.CatalogService {
	return storefront.NewCatalogService(
		src,
		memory.NewCatalogCache(time.Hour).WithClock(clk.now),
		nil,
		storefront.CatalogConfig{FreshTTL: 5 * time.Minute, StaleTTL: time.Hour},
		nil,
	).WithClock(clk.now)
}

// ──────────────────────────────────────────────────────────────────────────────
// Snapshot
// ──────────────────────────────────────────────────────────────────────────────

func TestSnapshot_MissDescargaYAplana(t *testing.T) {
	src := newSource()
	svc := newService(src, &clock{t: time.Now()})

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Categories, 2, "las categorías quedan planas")
	assert.Equal(t, entity.ID("1"), snap.Categories[1].ParentID)
	assert.Len(t, snap.Products, 1)
	assert.Len(t, snap.Colors, 1)
}

func TestSnapshot_FrescoNoVuelveAlBackend(t *testing.T) {
	src := newSource()
	clk := &clock{t: time.Now()}
	svc := newService(src, clk)
	ctx := context.Background()

	_, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	clk.advance(4 * time.Minute)
	_, err = svc.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.calls.Load())
}

func TestSnapshot_ViejoSeSirveYRefrescaEnSegundoPlano(t *testing.T) {
	src := newSource()
	clk := &clock{t: time.Now()}
	svc := newService(src, clk)
	ctx := context.Background()

	first, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	clk.advance(10 * time.Minute)

	stale, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, first, stale, "el snapshot viejo se devuelve sin esperar")

	require.Eventually(t, func() bool { return src.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestSnapshot_FalloDeColoresSeTolera(t *testing.T) {
	src := newSource()
	src.colorsErr = errors.New("boom")
	svc := newService(src, &clock{t: time.Now()})

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Colors)
	assert.NotNil(t, snap.Colors)
}

func TestSnapshot_FalloDeProductosSinCacheEsUnavailable(t *testing.T) {
	src := newSource()
	src.productsErr = domain.ErrUpstream
	svc := newService(src, &clock{t: time.Now()})

	_, err := svc.Snapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestSnapshot_BackendCaidoSirveElUltimoBueno(t *testing.T) {
	src := newSource()
	clk := &clock{t: time.Now()}
	svc := newService(src, clk)
	ctx := context.Background()

	good, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	src.setProductsErr(domain.ErrUpstream)
	clk.advance(3 * time.Hour)

	got, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, good, got)
}

func TestSnapshot_DescargasConcurrentesSeAgrupan(t *testing.T) {
	src := newSource()
	src.gate = make(chan struct{})
	svc := newService(src, &clock{t: time.Now()})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Snapshot(context.Background())
			assert.NoError(t, err)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
}

func TestSnapshot_ClienteCanceladoNoCortaLaDescargaCompartida(t *testing.T) {
	src := newSource()
	src.gate = make(chan struct{})
	svc := newService(src, &clock{t: time.Now()})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Snapshot(firstCtx)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan *entity.CatalogSnapshot, 1)
	go func() {
		snap, err := svc.Snapshot(context.Background())
		assert.NoError(t, err)
		second <- snap
	}()
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("el cliente cancelado sigue esperando")
	}

	close(src.gate)
	select {
	case snap := <-second:
		require.NotNil(t, snap)
		assert.Len(t, snap.Products, 1)
	case <-time.After(time.Second):
		t.Fatal("la descarga compartida no terminó")
	}
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestView_ReutilizaElArbol(t *testing.T) {
	svc := newService(newSource(), &clock{t: time.Now()})
	ctx := context.Background()

	v1, err := svc.View(ctx)
	require.NoError(t, err)
	v2, err := svc.View(ctx)
	require.NoError(t, err)
	assert.Same(t, v1.Tree, v2.Tree)
	assert.True(t, v1.Tree.HasChildren("1"))
}

func TestRefresh_Forzado(t *testing.T) {
	src := newSource()
	svc := newService(src, &clock{t: time.Now()})
	ctx := context.Background()

	_, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

package storefront

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/domain/catalog"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/listing"
)

const (
	homeEditorPicks   = 3
	homeTrendingEnd   = 9
	homeTopCategories = 6
)

// BrowseQuery posición del navegador y filtros del listado. Back nil = sin retroceso.
type BrowseQuery struct {
	Path     []entity.ID
	Back     *int
	Enter    entity.ID
	Query    string
	ColorIDs []entity.ID
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal // cero = tope por defecto
	Sort     listing.Sort
	Page     int
}

// BrowseConfig presentación del catálogo.
type BrowseConfig struct {
	HomeLabel string
	PageSize  int
	MaxPrice  int
}

// BrowseService arma la vista del catálogo y la portada a partir del snapshot.
type BrowseService struct {
	catalog Provider
	cfg     BrowseConfig
}

// NewBrowseService construye el servicio.
func NewBrowseService(p Provider, cfg BrowseConfig) *BrowseService {
	if cfg.HomeLabel == "" {
		cfg.HomeLabel = catalog.DefaultHomeLabel
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = listing.DefaultPageSize
	}
	if cfg.MaxPrice <= 0 {
		cfg.MaxPrice = listing.DefaultMaxPrice
	}
	return &BrowseService{catalog: p, cfg: cfg}
}

// Browse reconstruye el navegador desde q.Path, aplica Back y luego Enter, y lista los productos
// del cierre de descendientes del foco (todos en la vista raíz).
func (s *BrowseService) Browse(ctx context.Context, q BrowseQuery) (*dto.BrowseResponse, error) {
	v, err := s.catalog.View(ctx)
	if err != nil {
		return nil, err
	}
	snap, tree := v.Snapshot, v.Tree

	nav := catalog.NewNavigator(tree, q.Path...).WithHomeLabel(s.cfg.HomeLabel)
	if q.Back != nil {
		nav.BackTo(*q.Back)
	}
	if !q.Enter.IsZero() {
		nav.Enter(q.Enter)
	}
	scope := nav.Scope()

	maxPrice := q.MaxPrice
	if maxPrice.IsZero() {
		maxPrice = decimal.NewFromInt(int64(s.cfg.MaxPrice))
	}
	page := listing.Apply(snap.Products, listing.Filter{
		Scope:    scope,
		Query:    q.Query,
		ColorIDs: q.ColorIDs,
		MinPrice: q.MinPrice,
		MaxPrice: maxPrice,
		Sort:     q.Sort,
		Page:     q.Page,
		PageSize: s.cfg.PageSize,
	})

	sort := q.Sort
	if sort == "" {
		sort = listing.SortFeatured
	}
	return &dto.BrowseResponse{
		Path:       nav.Path(),
		Breadcrumb: Crumbs(nav.Breadcrumb()),
		Categories: categoryDTOs(tree, nav.Displayed(), snap.Products),
		Colors:     colorDTOs(listing.AvailableColors(snap.Products, scope, snap.Colors)),
		Products:   Cards(page.Items),
		Sort:       string(sort),
		PageResponse: dto.PageResponse{
			Total:    page.Total,
			Page:     page.Page,
			Pages:    page.Pages,
			PageSize: page.PageSize,
		},
	}, nil
}

// Home portada: selección del editor (productos 1-3), tendencias (4-9) y las 6 primeras categorías raíz.
func (s *BrowseService) Home(ctx context.Context) (*dto.HomeResponse, error) {
	v, err := s.catalog.View(ctx)
	if err != nil {
		return nil, err
	}
	products := v.Snapshot.Products
	roots := v.Tree.Roots()
	return &dto.HomeResponse{
		EditorPicks:   Cards(window(products, 0, homeEditorPicks)),
		Trending:      Cards(window(products, homeEditorPicks, homeTrendingEnd)),
		TopCategories: categoryDTOs(v.Tree, roots[:min(len(roots), homeTopCategories)], products),
	}, nil
}

func window(products []entity.Product, from, to int) []entity.Product {
	if from >= len(products) {
		return nil
	}
	return products[from:min(to, len(products))]
}

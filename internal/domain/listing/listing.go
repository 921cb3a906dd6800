// Package listing filtra, ordena y pagina el listado público de productos.
package listing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// Sort criterio de orden del listado.
type Sort string

const (
	SortFeatured  Sort = "featured" // orden del backend
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortNewest    Sort = "newest"
)

// ParseSort normaliza el criterio; valores desconocidos caen en SortFeatured.
func ParseSort(s string) Sort {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortNewest:
		return SortNewest
	default:
		return SortFeatured
	}
}

const (
	DefaultPageSize = 12
	DefaultMaxPrice = 100000
)

// Filter criterios del listado. Scope nil = todas las categorías.
type Filter struct {
	Scope    map[entity.ID]struct{}
	Query    string
	ColorIDs []entity.ID
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
	Sort     Sort
	Page     int
	PageSize int
}

// Page página de resultados.
type Page struct {
	Items    []entity.Product
	Total    int
	Page     int
	Pages    int
	PageSize int
}

// Apply filtra, ordena y pagina. No modifica products.
func Apply(products []entity.Product, f Filter) Page {
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.MaxPrice.IsZero() {
		f.MaxPrice = decimal.NewFromInt(DefaultMaxPrice)
	}

	matched := Match(products, f)
	SortProducts(matched, f.Sort)

	total := len(matched)
	pages := (total + f.PageSize - 1) / f.PageSize
	page := f.Page
	if page < 1 {
		page = 1
	}
	switch {
	case pages == 0:
		page = 1
	case page > pages:
		page = pages
	}
	start := (page - 1) * f.PageSize
	end := start + f.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page{Items: matched[start:end], Total: total, Page: page, Pages: pages, PageSize: f.PageSize}
}

// Match devuelve, en el orden de entrada, los productos que cumplen el filtro.
func Match(products []entity.Product, f Filter) []entity.Product {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(f.Query))
	maxPrice := f.MaxPrice
	if maxPrice.IsZero() {
		maxPrice = decimal.NewFromInt(DefaultMaxPrice)
	}

	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if f.Scope != nil {
			if _, ok := f.Scope[p.CategoryID]; !ok {
				continue
			}
		}
		price := p.DisplayPrice()
		if price.LessThan(f.MinPrice) || price.GreaterThan(maxPrice) {
			continue
		}
		if query != "" && !strings.Contains(fold.String(p.Name), query) {
			continue
		}
		if len(f.ColorIDs) > 0 && !p.HasColor(f.ColorIDs...) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts ordena in-place de forma estable.
func SortProducts(products []entity.Product, s Sort) {
	switch s {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].DisplayPrice().LessThan(products[j].DisplayPrice())
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].DisplayPrice().GreaterThan(products[j].DisplayPrice())
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// AvailableColors colores presentes en los productos del alcance, en el orden de la paleta.
// Colores que no están en la paleta se omiten.
func AvailableColors(products []entity.Product, scope map[entity.ID]struct{}, palette []entity.Color) []entity.Color {
	present := make(map[entity.ID]struct{})
	for _, p := range products {
		if scope != nil {
			if _, ok := scope[p.CategoryID]; !ok {
				continue
			}
		}
		for _, id := range p.ColorIDs {
			present[id] = struct{}{}
		}
	}
	out := make([]entity.Color, 0, len(present))
	for _, c := range palette {
		if _, ok := present[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

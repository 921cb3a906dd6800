// Package moderation agrupa los productos del vendedor por estado de moderación
// para las pestañas y contadores del panel.
package moderation

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// Tab pestaña del panel "Mis productos".
type Tab string

const (
	TabAll             Tab = "all"
	TabPendingApproval Tab = Tab(entity.StatusPendingApproval)
	TabApproved        Tab = Tab(entity.StatusApproved)
	TabActive          Tab = Tab(entity.StatusActive)
	TabRejected        Tab = Tab(entity.StatusRejected)
	TabDeleted         Tab = Tab(entity.StatusDeleted)
	TabDraft           Tab = Tab(entity.StatusDraft)
)

// Tabs orden de las pestañas en el panel.
var Tabs = []Tab{TabAll, TabPendingApproval, TabApproved, TabActive, TabRejected, TabDeleted, TabDraft}

// ParseTab normaliza la pestaña; desconocida = TabAll.
func ParseTab(s string) Tab {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tabs {
		if t == known {
			return t
		}
	}
	return TabAll
}

// Includes indica si un producto con ese estado aparece en la pestaña.
// "all" oculta los eliminados y rechazados.
func (t Tab) Includes(status entity.ProductStatus) bool {
	if t == TabAll {
		return status != entity.StatusDeleted && status != entity.StatusRejected
	}
	return entity.ProductStatus(t) == status
}

// Counters cantidad de productos por pestaña.
type Counters map[Tab]int

// Count calcula los contadores de todas las pestañas.
func Count(products []entity.SellerProduct) Counters {
	c := make(Counters, len(Tabs))
	for _, t := range Tabs {
		c[t] = 0
	}
	for _, p := range products {
		for _, t := range Tabs {
			if t.Includes(p.Status) {
				c[t]++
			}
		}
	}
	return c
}

// Query filtros del listado del vendedor. Scope nil = cualquier categoría.
type Query struct {
	Tab    Tab
	Search string
	Scope  map[entity.ID]struct{}
}

// Filter aplica pestaña, búsqueda (nombre, SKU o artículo) y alcance de categoría.
func Filter(products []entity.SellerProduct, q Query) []entity.SellerProduct {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q.Search))
	tab := q.Tab
	if tab == "" {
		tab = TabAll
	}

	out := make([]entity.SellerProduct, 0, len(products))
	for _, p := range products {
		if !tab.Includes(p.Status) {
			continue
		}
		if q.Scope != nil {
			if _, ok := q.Scope[p.CategoryID]; !ok {
				continue
			}
		}
		if needle != "" &&
			!strings.Contains(fold.String(p.Name), needle) &&
			!strings.Contains(fold.String(p.SKU), needle) &&
			!strings.Contains(fold.String(p.Article), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

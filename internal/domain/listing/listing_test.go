package listing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/listing"
)

func product(id, name, cat string, retail int64, colors ...entity.ID) entity.Product {
	return entity.Product{
		ID:          entity.ID(id),
		Name:        name,
		CategoryID:  entity.ID(cat),
		RetailPrice: decimal.NewFromInt(retail),
		ColorIDs:    colors,
	}
}

func productIDs(ps []entity.Product) []entity.ID {
	out := make([]entity.ID, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		in   string
		want listing.Sort
	}{
		{"price_asc", listing.SortPriceAsc},
		{" PRICE_DESC ", listing.SortPriceDesc},
		{"newest", listing.SortNewest},
		{"", listing.SortFeatured},
		{"random", listing.SortFeatured},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, listing.ParseSort(tt.in))
		})
	}
}

func TestMatch_Filtros(t *testing.T) {
	discounted := product("3", "Polo azul", "2", 900, "c2")
	discounted.DiscountPrice = decimal.NewNullDecimal(decimal.NewFromInt(40))
	products := []entity.Product{
		product("1", "Camisa Roja", "2", 100, "c1"),
		product("2", "Pantalón", "3", 300, "c2", "c3"),
		discounted,
		product("4", "Lámpara", "9", 200000),
	}

	t.Run("sin filtros excluye precio fuera de rango por defecto", func(t *testing.T) {
		got := listing.Match(products, listing.Filter{})
		assert.Equal(t, []entity.ID{"1", "2", "3"}, productIDs(got))
	})
	t.Run("alcance de categorías", func(t *testing.T) {
		got := listing.Match(products, listing.Filter{Scope: map[entity.ID]struct{}{"2": {}}})
		assert.Equal(t, []entity.ID{"1", "3"}, productIDs(got))
	})
	t.Run("búsqueda sin distinguir mayúsculas", func(t *testing.T) {
		got := listing.Match(products, listing.Filter{Query: "  CAMISA "})
		assert.Equal(t, []entity.ID{"1"}, productIDs(got))
	})
	t.Run("colores: basta uno", func(t *testing.T) {
		got := listing.Match(products, listing.Filter{ColorIDs: []entity.ID{"c3", "c1"}})
		assert.Equal(t, []entity.ID{"1", "2"}, productIDs(got))
	})
	t.Run("rango usa precio con descuento", func(t *testing.T) {
		got := listing.Match(products, listing.Filter{MaxPrice: decimal.NewFromInt(50)})
		assert.Equal(t, []entity.ID{"3"}, productIDs(got))
	})
}

func TestSortProducts(t *testing.T) {
	now := time.Now()
	a := product("a", "A", "1", 300)
	a.CreatedAt = now.Add(-time.Hour)
	b := product("b", "B", "1", 100)
	b.CreatedAt = now
	c := product("c", "C", "1", 200)
	c.CreatedAt = now.Add(-2 * time.Hour)

	tests := []struct {
		sort listing.Sort
		want []entity.ID
	}{
		{listing.SortFeatured, []entity.ID{"a", "b", "c"}},
		{listing.SortPriceAsc, []entity.ID{"b", "c", "a"}},
		{listing.SortPriceDesc, []entity.ID{"a", "c", "b"}},
		{listing.SortNewest, []entity.ID{"b", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			ps := []entity.Product{a, b, c}
			listing.SortProducts(ps, tt.sort)
			assert.Equal(t, tt.want, productIDs(ps))
		})
	}
}

func TestApply_Paginacion(t *testing.T) {
	var products []entity.Product
	for i := 0; i < 30; i++ {
		products = append(products, product(string(rune('a'+i%26))+string(rune('0'+i/26)), "p", "1", int64(10+i)))
	}

	first := listing.Apply(products, listing.Filter{})
	assert.Equal(t, 30, first.Total)
	assert.Equal(t, 3, first.Pages)
	assert.Equal(t, 1, first.Page)
	assert.Len(t, first.Items, listing.DefaultPageSize)

	last := listing.Apply(products, listing.Filter{Page: 9})
	assert.Equal(t, 3, last.Page, "la página se ajusta a la última")
	assert.Len(t, last.Items, 6)

	empty := listing.Apply(nil, listing.Filter{Page: 2})
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, 1, empty.Page)
	assert.Empty(t, empty.Items)
}

func TestAvailableColors(t *testing.T) {
	palette := []entity.Color{{ID: "c1", Name: "Rojo"}, {ID: "c2", Name: "Azul"}, {ID: "c3", Name: "Verde"}}
	products := []entity.Product{
		product("1", "x", "2", 10, "c3"),
		product("2", "y", "3", 10, "c1", "zz"),
	}

	all := listing.AvailableColors(products, nil, palette)
	require.Len(t, all, 2)
	assert.Equal(t, entity.ID("c1"), all[0].ID)
	assert.Equal(t, entity.ID("c3"), all[1].ID)

	scoped := listing.AvailableColors(products, map[entity.ID]struct{}{"2": {}}, palette)
	require.Len(t, scoped, 1)
	assert.Equal(t, entity.ID("c3"), scoped[0].ID)
}

package storefront_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/application/storefront"
	"github.com/renexpress/storefront-api/internal/domain/catalog"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/listing"
)

// staticProvider vista fija del catálogo.
type staticProvider struct{ view *storefront.View }

func (p staticProvider) View(context.Context) (*storefront.View, error) { return p.view, nil }

func newStatic(cats []entity.Category, products []entity.Product, colors []entity.Color) staticProvider {
	snap := &entity.CatalogSnapshot{Categories: cats, Products: products, Colors: colors, FetchedAt: time.Now()}
	return staticProvider{view: &storefront.View{Snapshot: snap, Tree: catalog.NewTree(cats)}}
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Ropa(1) > Camisas(2), Pantalones(3); Hogar(4).
func browseFixture() staticProvider {
	cats := []entity.Category{
		{ID: "1", Name: "Ropa"},
		{ID: "2", Name: "Camisas", ParentID: "1"},
		{ID: "3", Name: "Pantalones", ParentID: "1"},
		{ID: "4", Name: "Hogar"},
	}
	products := []entity.Product{
		{ID: "10", Name: "Camisa roja", CategoryID: "2", RetailPrice: price("1000"), ColorIDs: []entity.ID{"5"}},
		{ID: "11", Name: "Pantalón azul", CategoryID: "3", RetailPrice: price("2000"),
			DiscountPrice: decimal.NewNullDecimal(price("1500")), ColorIDs: []entity.ID{"6"}},
		{ID: "12", Name: "Mesa", CategoryID: "4", RetailPrice: price("500")},
	}
	colors := []entity.Color{{ID: "6", Name: "Azul"}, {ID: "5", Name: "Rojo"}, {ID: "7", Name: "Verde"}}
	return newStatic(cats, products, colors)
}

func productIDs(cards []dto.ProductCardDTO) []entity.ID {
	out := make([]entity.ID, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func TestBrowse_VistaRaiz(t *testing.T) {
	svc := storefront.NewBrowseService(browseFixture(), storefront.BrowseConfig{HomeLabel: "Главная"})

	res, err := svc.Browse(context.Background(), storefront.BrowseQuery{})
	require.NoError(t, err)

	require.Len(t, res.Categories, 2)
	assert.Equal(t, "Ropa", res.Categories[0].Name)
	assert.True(t, res.Categories[0].HasChildren)
	assert.Equal(t, 2, res.Categories[0].ProductCount)
	assert.Equal(t, 1, res.Categories[1].ProductCount)

	assert.Equal(t, []entity.ID{"10", "11", "12"}, productIDs(res.Products))
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Colors, 2)
	assert.Equal(t, entity.ID("6"), res.Colors[0].ID, "orden de la paleta")
	require.Len(t, res.Breadcrumb, 1)
	assert.Equal(t, "Главная", res.Breadcrumb[0].Label)
	assert.Equal(t, -1, res.Breadcrumb[0].Back)
	assert.Empty(t, res.Path)
	assert.Equal(t, "featured", res.Sort)
}

func TestBrowse_EnterAcotaAlCierreDeDescendientes(t *testing.T) {
	svc := storefront.NewBrowseService(browseFixture(), storefront.BrowseConfig{})

	res, err := svc.Browse(context.Background(), storefront.BrowseQuery{Enter: "1"})
	require.NoError(t, err)
	assert.Equal(t, []entity.ID{"1"}, res.Path)
	assert.Equal(t, []entity.ID{"10", "11"}, productIDs(res.Products))
	require.Len(t, res.Categories, 2)
	assert.Equal(t, "Camisas", res.Categories[0].Name)
	require.Len(t, res.Breadcrumb, 2)
	assert.Equal(t, 0, res.Breadcrumb[1].Back)

	res, err = svc.Browse(context.Background(), storefront.BrowseQuery{Path: []entity.ID{"1"}, Enter: "2"})
	require.NoError(t, err)
	assert.Equal(t, []entity.ID{"10"}, productIDs(res.Products))
	assert.Empty(t, res.Categories, "hoja sin hijos")
}

func TestBrowse_EnterNoHijoSeIgnora(t *testing.T) {
	svc := storefront.NewBrowseService(browseFixture(), storefront.BrowseConfig{})

	res, err := svc.Browse(context.Background(), storefront.BrowseQuery{Path: []entity.ID{"1"}, Enter: "4"})
	require.NoError(t, err)
	assert.Equal(t, []entity.ID{"1"}, res.Path)
}

func TestBrowse_BackYPrefijoValido(t *testing.T) {
	svc := storefront.NewBrowseService(browseFixture(), storefront.BrowseConfig{})
	ctx := context.Background()

	back := 0
	res, err := svc.Browse(ctx, storefront.BrowseQuery{Path: []entity.ID{"1", "2"}, Back: &back})
	require.NoError(t, err)
	assert.Equal(t, []entity.ID{"1"}, res.Path)

	home := -1
	res, err = svc.Browse(ctx, storefront.BrowseQuery{Path: []entity.ID{"1", "2"}, Back: &home})
	require.NoError(t, err)
	assert.Empty(t, res.Path)

	res, err = svc.Browse(ctx, storefront.BrowseQuery{Path: []entity.ID{"1", "99", "2"}})
	require.NoError(t, err)
	assert.Equal(t, []entity.ID{"1"}, res.Path)
}

func TestBrowse_FiltrosYOrden(t *testing.T) {
	svc := storefront.NewBrowseService(browseFixture(), storefront.BrowseConfig{})
	ctx := context.Background()

	res, err := svc.Browse(ctx, storefront.BrowseQuery{MaxPrice: price("1200")})
	require.NoError(t, err)
	assert.Equal(t, []entity.ID{"10", "12"}, productIDs(res.Products), "se compara el precio con descuento")

	res, err = svc.Browse(ctx, storefront.BrowseQuery{Sort: listing.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []entity.ID{"11", "10", "12"}, productIDs(res.Products))

	res, err = svc.Browse(ctx, storefront.BrowseQuery{ColorIDs: []entity.ID{"5"}, Query: "CAMISA"})
	require.NoError(t, err)
	assert.Equal(t, []entity.ID{"10"}, productIDs(res.Products))
}

func TestBrowse_PaginaFueraDeRangoSeAjusta(t *testing.T) {
	svc := storefront.NewBrowseService(browseFixture(), storefront.BrowseConfig{PageSize: 2})

	res, err := svc.Browse(context.Background(), storefront.BrowseQuery{Page: 9})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, []entity.ID{"12"}, productIDs(res.Products))
}

func TestBrowse_TarjetaConDescuento(t *testing.T) {
	svc := storefront.NewBrowseService(browseFixture(), storefront.BrowseConfig{})

	res, err := svc.Browse(context.Background(), storefront.BrowseQuery{Query: "pantalón"})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	card := res.Products[0]
	assert.True(t, card.Price.Equal(price("1500")))
	require.NotNil(t, card.OldPrice)
	assert.True(t, card.OldPrice.Equal(price("2000")))
	assert.Equal(t, 25, card.DiscountPercent)
}

func TestHome_Secciones(t *testing.T) {
	var products []entity.Product
	for i := 0; i < 12; i++ {
		products = append(products, entity.Product{ID: entity.ID(rune('a' + i)), Name: "P", RetailPrice: price("100")})
	}
	var cats []entity.Category
	for i := 0; i < 8; i++ {
		cats = append(cats, entity.Category{ID: entity.ID(rune('A' + i)), Name: "C"})
	}
	svc := storefront.NewBrowseService(newStatic(cats, products, nil), storefront.BrowseConfig{})

	res, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.ID{"a", "b", "c"}, productIDs(res.EditorPicks))
	assert.Equal(t, []entity.ID{"d", "e", "f", "g", "h", "i"}, productIDs(res.Trending))
	assert.Len(t, res.TopCategories, 6)
}

func TestHome_CatalogoCorto(t *testing.T) {
	products := []entity.Product{{ID: "1"}, {ID: "2"}}
	svc := storefront.NewBrowseService(newStatic(nil, products, nil), storefront.BrowseConfig{})

	res, err := svc.Home(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.EditorPicks, 2)
	assert.Empty(t, res.Trending)
	assert.NotNil(t, res.Trending)
	assert.Empty(t, res.TopCategories)
}

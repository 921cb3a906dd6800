package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renexpress/storefront-api/internal/domain/catalog"
	"github.com/renexpress/storefront-api/internal/domain/entity"
)

func TestNavigator_VistaRaiz(t *testing.T) {
	nav := catalog.NewNavigator(catalog.NewTree(nestedCatalog()))

	_, ok := nav.Focus()
	assert.False(t, ok)
	assert.Equal(t, []entity.ID{"1", "5"}, ids(nav.Displayed()))
	assert.Nil(t, nav.Scope())
	assert.Equal(t, []catalog.Crumb{{Label: catalog.DefaultHomeLabel, BackIndex: -1}}, nav.Breadcrumb())
}

func TestNavigator_EnterYBackTo_RoundTrip(t *testing.T) {
	nav := catalog.NewNavigator(catalog.NewTree(nestedCatalog()))

	require.True(t, nav.Enter("1"))
	require.True(t, nav.Enter("2"))
	require.True(t, nav.Enter("4"))
	assert.Equal(t, []entity.ID{"1", "2", "4"}, nav.Path())

	nav.BackTo(1)
	assert.Equal(t, []entity.ID{"1", "2"}, nav.Path())

	nav.BackTo(-1)
	assert.Empty(t, nav.Path())
}

func TestNavigator_EnterNoHijo_NoCambiaEstado(t *testing.T) {
	nav := catalog.NewNavigator(catalog.NewTree(nestedCatalog()))

	assert.False(t, nav.Enter("2"), "2 no es raíz")
	assert.Empty(t, nav.Path())

	require.True(t, nav.Enter("1"))
	assert.False(t, nav.Enter("5"), "5 no es hijo de 1")
	assert.False(t, nav.Enter("no-existe"))
	assert.Equal(t, []entity.ID{"1"}, nav.Path())
}

func TestNavigator_BackToFueraDeRango(t *testing.T) {
	nav := catalog.NewNavigator(catalog.NewTree(nestedCatalog()), "1", "2")

	nav.BackTo(5)
	assert.Equal(t, []entity.ID{"1", "2"}, nav.Path())

	nav.BackTo(-7)
	assert.Empty(t, nav.Path())
}

func TestNavigator_Restaurar_ConservaPrefijoValido(t *testing.T) {
	nav := catalog.NewNavigator(catalog.NewTree(nestedCatalog()), "1", "2", "5", "4")

	assert.Equal(t, []entity.ID{"1", "2"}, nav.Path())
	focus, ok := nav.Focus()
	require.True(t, ok)
	assert.Equal(t, entity.ID("2"), focus)
	assert.Equal(t, []entity.ID{"4"}, ids(nav.Displayed()))
}

func TestNavigator_Breadcrumb(t *testing.T) {
	nav := catalog.NewNavigator(catalog.NewTree(nestedCatalog()), "1", "2").WithHomeLabel("Главная")

	crumbs := nav.Breadcrumb()
	require.Len(t, crumbs, 3)
	assert.Equal(t, catalog.Crumb{Label: "Главная", BackIndex: -1}, crumbs[0])
	assert.Equal(t, catalog.Crumb{ID: "1", Label: "Ropa", BackIndex: 0}, crumbs[1])
	assert.Equal(t, catalog.Crumb{ID: "2", Label: "Camisas", BackIndex: 1}, crumbs[2])

	// clic en la miga i ejecuta BackTo(i-1)
	nav.BackTo(crumbs[1].BackIndex)
	assert.Equal(t, []entity.ID{"1"}, nav.Path())
}

func TestNavigator_Scope(t *testing.T) {
	nav := catalog.NewNavigator(catalog.NewTree(nestedCatalog()), "1")

	assert.Equal(t, idSet("1", "2", "3", "4"), nav.Scope())
}

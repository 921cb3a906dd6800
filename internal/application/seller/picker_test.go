package seller_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/entity"
)

func TestCategories_Raices(t *testing.T) {
	svc := newService(&fakeSellerSource{}, nil)

	res, err := svc.Categories(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Ropa", res.Items[0].Name)
	assert.True(t, res.Items[0].HasChildren)
	assert.False(t, res.Items[1].HasChildren)
	assert.Empty(t, res.Path)
}

func TestCategories_HijosConRuta(t *testing.T) {
	svc := newService(&fakeSellerSource{}, nil)

	res, err := svc.Categories(context.Background(), "1", "")
	require.NoError(t, err)
	assert.Equal(t, entity.ID("1"), res.Parent)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Ropa > Camisas", res.Items[0].FullPath)
	require.Len(t, res.Path, 1)
	assert.Equal(t, "Ropa", res.Path[0].Label)
}

func TestCategories_PadreInexistente(t *testing.T) {
	_, err := newService(&fakeSellerSource{}, nil).Categories(context.Background(), "77", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategories_BusquedaPorRutaCompleta(t *testing.T) {
	svc := newService(&fakeSellerSource{}, nil)

	res, err := svc.Categories(context.Background(), "", "ropa")
	require.NoError(t, err)
	var paths []string
	for _, it := range res.Items {
		paths = append(paths, it.FullPath)
	}
	assert.Equal(t, []string{"Ropa", "Ropa > Camisas", "Ropa > Pantalones"}, paths)
}

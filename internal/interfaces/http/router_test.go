package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renexpress/storefront-api/internal/application/auth"
	"github.com/renexpress/storefront-api/internal/application/seller"
	"github.com/renexpress/storefront-api/internal/application/storefront"
	"github.com/renexpress/storefront-api/internal/application/usecase"
	"github.com/renexpress/storefront-api/internal/domain"
	"github.com/renexpress/storefront-api/internal/domain/catalog"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	apphttp "github.com/renexpress/storefront-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type staticCatalog struct{ view *storefront.View }

func (s staticCatalog) View(context.Context) (*storefront.View, error) { return s.view, nil }

func newCatalog() staticCatalog {
	snap := &entity.CatalogSnapshot{
		Categories: []entity.Category{
			{ID: "1", Name: "Ropa"},
			{ID: "2", Name: "Camisas", ParentID: "1"},
			{ID: "3", Name: "Hogar"},
		},
		Products: []entity.Product{
			{ID: "10", Name: "Camisa azul", CategoryID: "2", CategoryFullPath: "Ropa > Camisas", RetailPrice: decimal.NewFromInt(1500)},
			{ID: "11", Name: "Lámpara", CategoryID: "3", CategoryFullPath: "Hogar", RetailPrice: decimal.NewFromInt(900)},
		},
		Colors:    []entity.Color{{ID: "5", Name: "Красный", HexCode: "#f00"}},
		FetchedAt: time.Now(),
	}
	return staticCatalog{view: &storefront.View{Snapshot: snap, Tree: catalog.NewTree(snap.Categories)}}
}

type fakeProducts struct{}

func (fakeProducts) Product(_ context.Context, id entity.ID) (*entity.Product, error) {
	if id != "10" {
		return nil, domain.ErrNotFound
	}
	return &entity.Product{ID: "10", Name: "Camisa azul", CategoryID: "2", CategoryFullPath: "Ropa > Camisas", RetailPrice: decimal.NewFromInt(1500)}, nil
}

func (fakeProducts) Combinations(context.Context, entity.ID) (entity.VariantSet, error) {
	return entity.VariantSet{}, nil
}

func (fakeProducts) Reviews(context.Context, entity.ID) ([]entity.Review, error) { return nil, nil }

type fakeSellerProducts struct {
	products []entity.SellerProduct
	deleted  []entity.ID
}

func (f *fakeSellerProducts) MyProducts(context.Context, entity.ID) ([]entity.SellerProduct, error) {
	return f.products, nil
}

func (f *fakeSellerProducts) Submit(context.Context, entity.ProductSubmission) (entity.ID, error) {
	return "99", nil
}

func (f *fakeSellerProducts) UpdateSubmit(context.Context, entity.ProductSubmission) error { return nil }

func (f *fakeSellerProducts) Delete(_ context.Context, id entity.ID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeStats struct{}

func (fakeStats) MyStats(context.Context, entity.ID) (*entity.SellerStats, error) {
	return &entity.SellerStats{TotalOrders: 4, TotalRevenue: decimal.NewFromInt(1000), CompletedOrders: 2}, nil
}

type fakeReport struct{}

func (fakeReport) GenerateSellerReport(context.Context, *entity.Client, *entity.SellerStats, time.Time) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

type fakeGateway struct{}

func (fakeGateway) Login(_ context.Context, username, password string) (*entity.Client, error) {
	if password != "secreto" {
		return nil, domain.ErrUnauthorized
	}
	return &entity.Client{ID: testClientID, Username: username}, nil
}

func (fakeGateway) Register(_ context.Context, fullName, phone string) (*entity.Client, error) {
	return &entity.Client{ID: testClientID, FullName: fullName, Phone: phone}, nil
}

type testEnv struct {
	app    *fiber.App
	seller *fakeSellerProducts
}

func newTestEnv(t *testing.T, loginLimit int) *testEnv {
	t.Helper()
	cat := newCatalog()
	sellerSrc := &fakeSellerProducts{products: []entity.SellerProduct{
		{Product: entity.Product{ID: "20", Name: "Camisa roja", CategoryID: "2"}, Status: entity.StatusApproved},
		{Product: entity.Product{ID: "21", Name: "Camisa vieja", CategoryID: "2"}, Status: entity.StatusDeleted},
	}}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Catalog:     storefront.NewBrowseService(cat, storefront.BrowseConfig{}),
		ProductUC:   usecase.NewProductUseCase(fakeProducts{}, cat, nil, nil, nil),
		SellerSvc:   seller.NewService(sellerSrc, cat, nil, nil, nil),
		AnalyticsUC: usecase.NewAnalyticsUseCase(fakeStats{}, fakeReport{}),
		AuthUC:      auth.NewAuthUseCase(fakeGateway{}, nil, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, nil),
		LoginLimit:  loginLimit,
		LoginWindow: time.Minute,
		JWTSecret:   testJWTSecret,
	})
	return &testEnv{app: app, seller: sellerSrc}
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo y ficha
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CatalogoEntrarEnCategoria(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodGet, "/api/catalog?enter=1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Path       []string `json:"path"`
		Categories []struct {
			ID string `json:"id"`
		} `json:"categories"`
		Products []struct {
			ID string `json:"id"`
		} `json:"products"`
	}
	decode(t, resp, &body)
	assert.Equal(t, []string{"1"}, body.Path)
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "2", body.Categories[0].ID)
	require.Len(t, body.Products, 1)
	assert.Equal(t, "10", body.Products[0].ID)
}

func TestRouter_CatalogoBackInvalido_Retorna400(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodGet, "/api/catalog?back=x", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ProductoInexistente_Retorna404(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodGet, "/api/products/404", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_ProductoAnonimo(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodGet, "/api/products/10", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		ID      string `json:"id"`
		Similar []struct {
			ID string `json:"id"`
		} `json:"similar"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "10", body.ID)
	assert.Empty(t, body.Similar, "no hay otros productos en Ropa")
}

// ──────────────────────────────────────────────────────────────────────────────
// Panel del vendedor
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SellerSinToken_Retorna401(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodGet, "/api/seller/products", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_SellerListado(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodGet, "/api/seller/products?tab=deleted", tokenForRole(t, "client"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total int `json:"total"`
		Items []struct {
			ID           string `json:"id"`
			CategoryPath string `json:"category_path"`
		} `json:"items"`
		Counters map[string]int `json:"counters"`
	}
	decode(t, resp, &body)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "21", body.Items[0].ID)
	assert.Equal(t, "Ropa > Camisas", body.Items[0].CategoryPath)
	assert.Equal(t, 1, body.Counters["all"], "all oculta los eliminados")
	assert.Equal(t, 1, body.Counters["deleted"])
}

func TestRouter_SellerEnvioInvalido_Retorna400ConCampo(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodPost, "/api/seller/products", tokenForRole(t, "client"), `{"name":"Camisa","category_id":"1","retail_price":"100"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Equal(t, "category_id", body["field"], "Ropa no es una hoja")
}

func TestRouter_SellerEnvioValido_Retorna201(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodPost, "/api/seller/products", tokenForRole(t, "client"), `{"name":"Camisa","category_id":"2","retail_price":"1 500,50"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "99", body["id"])
	assert.Equal(t, "pending_approval", body["status"])
}

func TestRouter_SellerEliminarEliminado_Retorna409(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodDelete, "/api/seller/products/21", tokenForRole(t, "client"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Empty(t, env.seller.deleted)
}

func TestRouter_SellerEliminar_Retorna204(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodDelete, "/api/seller/products/20", tokenForRole(t, "client"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []entity.ID{"20"}, env.seller.deleted)
}

func TestRouter_SellerProductoAjeno_Retorna404(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodPost, "/api/seller/products/77/resubmit", tokenForRole(t, "client"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_BorradoresSinBaseDeDatos_Retorna503(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodGet, "/api/seller/drafts", tokenForRole(t, "client"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_SelectorDeCategoria(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodGet, "/api/seller/categories?parent=1", tokenForRole(t, "client"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/seller/categories?parent=404", tokenForRole(t, "client"), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_AnaliticaYReportePDF(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodGet, "/api/seller/analytics", tokenForRole(t, "client"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats map[string]interface{}
	decode(t, resp, &stats)
	assert.Equal(t, "250", stats["average_order_value"])

	resp = env.do(t, http.MethodGet, "/api/seller/analytics/report.pdf", tokenForRole(t, "client"), "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	data, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_LoginEmiteToken(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", `{"username":" ivanov ","password":"secreto"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token  string `json:"token"`
		Client struct {
			Username string `json:"username"`
		} `json:"client"`
	}
	decode(t, resp, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "IVANOV", body.Client.Username)

	// el token emitido abre el panel del vendedor
	resp = env.do(t, http.MethodGet, "/api/seller/products", "Bearer "+body.Token, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_LoginCredencialesInvalidas_Retorna401(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"ivanov","password":"mal"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_RegistroSinTerminos_Retorna400(t *testing.T) {
	env := newTestEnv(t, 0)
	resp := env.do(t, http.MethodPost, "/api/auth/register", "", `{"full_name":"Ivan Ivanov","phone":"+7900"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "agree_terms", body["field"])
}

func TestRouter_LoginLimitadoPorIP(t *testing.T) {
	env := newTestEnv(t, 2)
	for i := 0; i < 2; i++ {
		resp := env.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"ivanov","password":"mal"}`)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", `{"username":"ivanov","password":"secreto"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

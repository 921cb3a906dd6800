package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/renexpress/storefront-api/internal/application/storefront"
	"github.com/renexpress/storefront-api/internal/domain/entity"
	"github.com/renexpress/storefront-api/internal/domain/listing"
	"github.com/renexpress/storefront-api/pkg/money"
)

// CatalogHandler catálogo público: navegación por categorías y portada.
type CatalogHandler struct {
	svc *storefront.BrowseService
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(svc *storefront.BrowseService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// splitIDs "1, 2,,3" → [1 2 3].
func splitIDs(s string) []entity.ID {
	var out []entity.ID
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, entity.ID(part))
		}
	}
	return out
}

func queryAmount(c *fiber.Ctx, key string) (decimal.Decimal, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return decimal.Zero, true
	}
	d, err := money.Parse(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Browse godoc
// @Summary      Navegar el catálogo
// @Description  Restaura la pila de categorías desde path, aplica back y enter, y lista los productos del foco.
// @Tags         catalog
// @Produce      json
// @Param        path       query  string  false  "IDs de la pila separados por coma"
// @Param        back       query  int     false  "Índice de la miga a la que volver (-1 = inicio)"
// @Param        enter      query  string  false  "Categoría hija a la que entrar"
// @Param        q          query  string  false  "Búsqueda por nombre"
// @Param        colors     query  string  false  "IDs de color separados por coma"
// @Param        min_price  query  string  false  "Precio mínimo"
// @Param        max_price  query  string  false  "Precio máximo"
// @Param        sort       query  string  false  "featured | price_asc | price_desc | newest"
// @Param        page       query  int     false  "Página"  default(1)
// @Success      200  {object}  dto.BrowseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) Browse(c *fiber.Ctx) error {
	q := storefront.BrowseQuery{
		Path:     splitIDs(c.Query("path")),
		Enter:    entity.ID(strings.TrimSpace(c.Query("enter"))),
		Query:    c.Query("q"),
		ColorIDs: splitIDs(c.Query("colors")),
		Sort:     listing.ParseSort(c.Query("sort")),
		Page:     c.QueryInt("page", 1),
	}
	if raw := strings.TrimSpace(c.Query("back")); raw != "" {
		back, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "INVALID_QUERY", "back debe ser un entero")
		}
		q.Back = &back
	}
	var ok bool
	if q.MinPrice, ok = queryAmount(c, "min_price"); !ok {
		return badRequest(c, "INVALID_QUERY", "min_price inválido")
	}
	if q.MaxPrice, ok = queryAmount(c, "max_price"); !ok {
		return badRequest(c, "INVALID_QUERY", "max_price inválido")
	}

	out, err := h.svc.Browse(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Home godoc
// @Summary      Portada
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.HomeResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/home [get]
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	out, err := h.svc.Home(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

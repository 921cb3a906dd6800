package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/application/usecase"
	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// ProductHandler ficha pública de producto.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func productID(c *fiber.Ctx) entity.ID { return entity.ID(strings.TrimSpace(c.Params("id"))) }

// GetByID godoc
// @Summary      Ficha de producto
// @Tags         products
// @Produce      json
// @Param        id   path   string  true   "ID del producto"
// @Param        sel  query  string  false  "Selección inicial, p. ej. color:3,size:5"
// @Success      200  {object}  dto.ProductDetailDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id := productID(c)
	if id.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Detail(c.UserContext(), id, GetClientID(c), usecase.ParseSelection(c.Query("sel")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Variants godoc
// @Summary      Estado del selector de variantes
// @Description  Aplica sel en orden y devuelve disponibilidad por valor, combinación activa y oferta efectiva.
// @Tags         products
// @Produce      json
// @Param        id   path   string  true   "ID del producto"
// @Param        sel  query  string  false  "Selección, p. ej. color:3,size:5"
// @Success      200  {object}  dto.VariantStateDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/variants [get]
func (h *ProductHandler) Variants(c *fiber.Ctx) error {
	id := productID(c)
	if id.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Variants(c.UserContext(), id, usecase.ParseSelection(c.Query("sel")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

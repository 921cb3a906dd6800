package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/renexpress/storefront-api/internal/application/dto"
	"github.com/renexpress/storefront-api/internal/application/seller"
	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// SellerHandler panel del vendedor (protegido). El client_id sale siempre del token.
type SellerHandler struct {
	svc *seller.Service
}

// NewSellerHandler construye el handler.
func NewSellerHandler(svc *seller.Service) *SellerHandler {
	return &SellerHandler{svc: svc}
}

// List godoc
// @Summary      Mis productos
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Param        tab       query  string  false  "all | pending_approval | approved | active | rejected | deleted | draft"
// @Param        q         query  string  false  "Búsqueda por nombre, SKU o artículo"
// @Param        category  query  string  false  "Categoría (incluye descendientes)"
// @Success      200  {object}  dto.SellerProductListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/seller/products [get]
func (h *SellerHandler) List(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID.IsZero() {
		return unauthorized(c)
	}
	out, err := h.svc.List(c.UserContext(), clientID, seller.ListQuery{
		Tab:      c.Query("tab"),
		Search:   c.Query("q"),
		Category: entity.ID(strings.TrimSpace(c.Query("category"))),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar producto a moderación
// @Tags         seller
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitProductRequest  true  "Formulario del producto"
// @Success      201   {object}  dto.SubmitProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/seller/products [post]
func (h *SellerHandler) Submit(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID.IsZero() {
		return unauthorized(c)
	}
	var in dto.SubmitProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.Submit(c.UserContext(), clientID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar producto
// @Description  La edición devuelve el producto a moderación.
// @Tags         seller
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.SubmitProductRequest  true  "Formulario del producto"
// @Success      200   {object}  dto.SubmitProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/seller/products/{id} [put]
func (h *SellerHandler) Update(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID.IsZero() {
		return unauthorized(c)
	}
	var in dto.SubmitProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.Update(c.UserContext(), clientID, productID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Resubmit godoc
// @Summary      Reenviar producto eliminado o rechazado
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.SubmitProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/seller/products/{id}/resubmit [post]
func (h *SellerHandler) Resubmit(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID.IsZero() {
		return unauthorized(c)
	}
	out, err := h.svc.Resubmit(c.UserContext(), clientID, productID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         seller
// @Security     Bearer
// @Param        id  path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/seller/products/{id} [delete]
func (h *SellerHandler) Delete(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID.IsZero() {
		return unauthorized(c)
	}
	if err := h.svc.Delete(c.UserContext(), clientID, productID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Categories godoc
// @Summary      Selector de categoría
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Param        parent  query  string  false  "Categoría padre (vacío = raíces)"
// @Param        q       query  string  false  "Búsqueda en la ruta completa"
// @Success      200  {object}  dto.CategoryPickerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/seller/categories [get]
func (h *SellerHandler) Categories(c *fiber.Ctx) error {
	out, err := h.svc.Categories(c.UserContext(), entity.ID(strings.TrimSpace(c.Query("parent"))), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SaveDraft godoc
// @Summary      Guardar borrador
// @Tags         seller
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DraftRequest  true  "Borrador"
// @Success      201   {object}  dto.DraftDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/seller/drafts [post]
func (h *SellerHandler) SaveDraft(c *fiber.Ctx) error {
	return h.saveDraft(c, "", fiber.StatusCreated)
}

// UpdateDraft godoc
// @Summary      Actualizar borrador
// @Tags         seller
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del borrador"
// @Param        body  body  dto.DraftRequest  true  "Borrador"
// @Success      200   {object}  dto.DraftDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/seller/drafts/{id} [put]
func (h *SellerHandler) UpdateDraft(c *fiber.Ctx) error {
	return h.saveDraft(c, c.Params("id"), fiber.StatusOK)
}

func (h *SellerHandler) saveDraft(c *fiber.Ctx, id string, status int) error {
	clientID := GetClientID(c)
	if clientID.IsZero() {
		return unauthorized(c)
	}
	var in dto.DraftRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.SaveDraft(c.UserContext(), clientID, id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(status).JSON(out)
}

// Drafts godoc
// @Summary      Listar borradores
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.DraftDTO
// @Router       /api/seller/drafts [get]
func (h *SellerHandler) Drafts(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID.IsZero() {
		return unauthorized(c)
	}
	out, err := h.svc.Drafts(c.UserContext(), clientID, c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Draft godoc
// @Summary      Obtener borrador
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/seller/drafts/{id} [get]
func (h *SellerHandler) Draft(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID.IsZero() {
		return unauthorized(c)
	}
	out, err := h.svc.Draft(c.UserContext(), clientID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteDraft godoc
// @Summary      Eliminar borrador
// @Tags         seller
// @Security     Bearer
// @Param        id  path  string  true  "ID del borrador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/seller/drafts/{id} [delete]
func (h *SellerHandler) DeleteDraft(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID.IsZero() {
		return unauthorized(c)
	}
	if err := h.svc.DeleteDraft(c.UserContext(), clientID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

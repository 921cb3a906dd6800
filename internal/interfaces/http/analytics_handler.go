package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/renexpress/storefront-api/internal/application/usecase"
	"github.com/renexpress/storefront-api/internal/domain/entity"
)

// AnalyticsHandler analítica del vendedor (protegido).
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Panel de analítica del vendedor
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SellerAnalyticsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/seller/analytics [get]
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID.IsZero() {
		return unauthorized(c)
	}
	out, err := h.uc.Dashboard(c.UserContext(), clientID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Informe de ventas en PDF
// @Tags         seller
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/seller/analytics/report.pdf [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	clientID := GetClientID(c)
	if clientID.IsZero() {
		return unauthorized(c)
	}
	client := &entity.Client{ID: clientID, Username: GetUsername(c)}
	pdf, err := h.uc.Report(c.UserContext(), client)
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("informe-%s-%s.pdf", clientID, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

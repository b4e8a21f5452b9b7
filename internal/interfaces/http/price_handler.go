package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/pricing"
)

// PriceHandler maneja el historial de precios (protegido).
type PriceHandler struct {
	uc *pricing.PriceLedgerUseCase
}

// NewPriceHandler construye el handler.
func NewPriceHandler(uc *pricing.PriceLedgerUseCase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// Set godoc
// @Summary      Definir precio de venta
// @Description  Cierra el precio activo y crea uno nuevo; el mismo importe también genera historial.
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SetPriceRequest  true  "product_id, amount"
// @Success      201   {object}  dto.PriceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prices [post]
func (h *PriceHandler) Set(c *fiber.Ctx) error {
	var in dto.SetPriceRequest
	if e := bindAndValidate(c, &in); e != nil {
		return badRequest(c, e)
	}
	out, err := h.uc.SetPrice(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Historial de precios
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        product_id  query     string  false  "filtrar por producto"
// @Param        limit       query     int     false  "máximo 100"
// @Param        offset      query     int     false  "desplazamiento"
// @Success      200         {object}  dto.PriceListResponse
// @Router       /api/prices [get]
func (h *PriceHandler) List(c *fiber.Ctx) error {
	page, e := bindPage(c)
	if e != nil {
		return badRequest(c, e)
	}
	productID := c.Query("product_id", c.Params("id"))
	out, err := h.uc.ListPrices(c.UserContext(), productID, page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/application/inventory"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/pkg/i18n"
)

// SheetHandler descarga la hoja de datos PDF de una pieza.
type SheetHandler struct {
	uc         *inventory.PartUseCase
	translator *i18n.Translator
}

// NewSheetHandler construye el handler.
func NewSheetHandler(uc *inventory.PartUseCase, translator *i18n.Translator) *SheetHandler {
	return &SheetHandler{uc: uc, translator: translator}
}

// Download genera la hoja PDF con tablas de fabricantes, distribuidores y parámetros.
// @Summary      Hoja de datos PDF
// @Tags         Parts
// @Produce      application/pdf
// @Param        id  path  int  true  "ID de la pieza"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/sheet.pdf [get]
func (h *SheetHandler) Download(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	tr := h.translator.For(c.Get(fiber.HeaderAcceptLanguage))
	pdf, filename, err := h.uc.Sheet(c.UserContext(), tr, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pieza no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "hoja PDF no disponible"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colegio-cartera/internal/application/dto"
)

// BrandingHandler expone tema, módulos activos y proveedor del asistente.
type BrandingHandler struct {
	branding dto.BrandingDTO
}

// NewBrandingHandler construye el handler con la marca ya resuelta desde la configuración.
func NewBrandingHandler(branding dto.BrandingDTO) *BrandingHandler {
	return &BrandingHandler{branding: branding}
}

// Get godoc
// @Summary      Marca y módulos de la institución
// @Tags         branding
// @Produce      json
// @Success      200  {object}  dto.BrandingDTO
// @Router       /api/branding [get]
func (h *BrandingHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.branding)
}

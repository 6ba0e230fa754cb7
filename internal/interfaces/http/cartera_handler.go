package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colegio-cartera/internal/application/billing"
)

// CarteraHandler consulta de estado de cartera.
type CarteraHandler struct {
	uc *billing.StatusUseCase
}

// NewCarteraHandler construye el handler.
func NewCarteraHandler(uc *billing.StatusUseCase) *CarteraHandler {
	return &CarteraHandler{uc: uc}
}

// GetStatus godoc
// @Summary      Estado de cartera de un estudiante
// @Description  Detalle por periodo, estado agregado y total pendiente. Si hay deuda incluye
//               un enlace a la pasarela simulada (informativo, no confirma pagos).
// @Tags         cartera
// @Produce      json
// @Param        documento  path  string  true  "Documento del estudiante"
// @Success      200  {object}  dto.StudentStatusDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/cartera/{documento} [get]
func (h *CarteraHandler) GetStatus(c *fiber.Ctx) error {
	doc := strings.TrimSpace(c.Params("documento"))
	if doc == "" {
		return badRequest(c, "documento requerido")
	}
	out, err := h.uc.GetStatus(c.UserContext(), doc)
	if err != nil {
		return writeError(c, err, "No se encontró información para el documento ingresado")
	}
	return c.JSON(out)
}

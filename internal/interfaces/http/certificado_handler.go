package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colegio-cartera/internal/application/billing"
)

// CertificadoHandler expedición y verificación del paz y salvo.
type CertificadoHandler struct {
	uc *billing.CertificateUseCase
}

// NewCertificadoHandler construye el handler.
func NewCertificadoHandler(uc *billing.CertificateUseCase) *CertificadoHandler {
	return &CertificadoHandler{uc: uc}
}

// Download godoc
// @Summary      Descargar certificado de paz y salvo
// @Description  Solo se expide si el estudiante tiene filas y ninguna pendiente.
// @Tags         certificados
// @Produce      application/pdf
// @Param        documento  path  string  true  "Documento del estudiante"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.IneligibleResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/certificados/{documento} [get]
func (h *CertificadoHandler) Download(c *fiber.Ctx) error {
	doc := strings.TrimSpace(c.Params("documento"))
	if doc == "" {
		return badRequest(c, "documento requerido")
	}
	cert, err := h.uc.Issue(c.UserContext(), doc)
	if err != nil {
		return writeError(c, err, "No se encontró información para el documento ingresado")
	}
	c.Set(fiber.HeaderContentType, cert.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, cert.Filename))
	c.Set("X-Verification-Code", cert.Code)
	return c.Send(cert.Content)
}

// Verify godoc
// @Summary      Verificar un certificado
// @Description  Recalcula el código del documento y reporta el estado actual del estudiante.
// @Tags         certificados
// @Produce      json
// @Param        documento  path  string  true  "Documento"
// @Param        codigo     path  string  true  "Código de verificación"
// @Success      200  {object}  dto.CertificateVerificationDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/certificados/verificar/{documento}/{codigo} [get]
func (h *CertificadoHandler) Verify(c *fiber.Ctx) error {
	doc := strings.TrimSpace(c.Params("documento"))
	code := strings.TrimSpace(c.Params("codigo"))
	if doc == "" || code == "" {
		return badRequest(c, "documento y código requeridos")
	}
	out, err := h.uc.Verify(c.UserContext(), doc, code)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colegio-cartera/internal/application/dto"
	"github.com/jhoicas/colegio-cartera/internal/application/pqrs"
)

// PQRSHandler radicación y consulta de PQRS.
type PQRSHandler struct {
	uc *pqrs.UseCase
}

// NewPQRSHandler construye el handler.
func NewPQRSHandler(uc *pqrs.UseCase) *PQRSHandler {
	return &PQRSHandler{uc: uc}
}

// Create godoc
// @Summary      Radicar una PQRS
// @Tags         pqrs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePetitionRequest  true  "documento, nombre, tipo y asunto obligatorios"
// @Success      201  {object}  dto.PetitionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/pqrs [post]
func (h *PQRSHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePetitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Submit(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Categories godoc
// @Summary      Tipos de solicitud admitidos
// @Tags         pqrs
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/pqrs/categorias [get]
func (h *PQRSHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.uc.Categories())
}

// GetByRadicado godoc
// @Summary      Consultar radicaciones por número
// @Description  Dos radicaciones del mismo documento el mismo día comparten número; se devuelven todas.
// @Tags         pqrs
// @Produce      json
// @Param        radicado  path  string  true  "Número de radicado (RAD-YYYYMMDD-XXXXXXXXXX)"
// @Success      200  {array}   dto.PetitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pqrs/{radicado} [get]
func (h *PQRSHandler) GetByRadicado(c *fiber.Ctx) error {
	out, err := h.uc.FindByRadicado(c.UserContext(), c.Params("radicado"))
	if err != nil {
		return writeError(c, err, "radicado no encontrado")
	}
	return c.JSON(out)
}

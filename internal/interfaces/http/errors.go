package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colegio-cartera/internal/application/dto"
	"github.com/jhoicas/colegio-cartera/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP.
// notFoundMsg personaliza el 404 de cada recurso.
func writeError(c *fiber.Ctx, err error, notFoundMsg string) error {
	var ineligible *domain.IneligibleError
	var svc *domain.ServiceError

	switch {
	case errors.As(err, &ineligible):
		return c.Status(fiber.StatusConflict).JSON(dto.IneligibleResponse{
			Code:           "INELIGIBLE",
			Message:        "no se puede expedir el paz y salvo: " + ineligible.Reason,
			PendingTotal:   ineligible.PendingTotal.String(),
			PendingPeriods: ineligible.PendingPeriods,
		})
	case errors.As(err, &svc):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ServiceErrorResponse{
			Code:           "SERVICE_ERROR",
			Message:        svc.Message,
			Provider:       svc.Provider,
			ProviderStatus: svc.Status,
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	case errors.Is(err, domain.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "la sesión no existe o expiró"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrSourceUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Code: "SOURCE_UNAVAILABLE", Message: "la fuente de datos no está disponible, intente más tarde",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}

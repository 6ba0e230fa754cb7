package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrIneligible        = errors.New("no elegible para certificado")
	ErrSourceUnavailable = errors.New("fuente de datos no disponible")
	ErrSessionNotFound   = errors.New("sesión de chat no encontrada")
)

// IneligibleError detalla por qué no se puede expedir el paz y salvo.
// errors.Is(err, ErrIneligible) es verdadero para cualquier *IneligibleError.
type IneligibleError struct {
	Reason         string
	PendingTotal   decimal.Decimal
	PendingPeriods []string
}

func (e *IneligibleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrIneligible.Error(), e.Reason)
}

func (e *IneligibleError) Unwrap() error { return ErrIneligible }

// ServiceError respuesta no exitosa del servicio de completado de texto.
// Status y Message se entregan al usuario sin modificar.
type ServiceError struct {
	Provider string
	Status   int // código HTTP del proveedor; 0 si no hubo respuesta
	Message  string
}

func (e *ServiceError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Provider, e.Status, e.Message)
}

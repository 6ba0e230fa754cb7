package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus estado de pago de un periodo (o agregado de un estudiante).
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAGADO"
	PaymentStatusPending PaymentStatus = "PENDIENTE"
)

// LedgerRow representa una fila de cartera: un estudiante en un periodo de cobro.
// Es información de referencia de solo lectura cargada desde una fuente tabular.
type LedgerRow struct {
	Documento      string          // DOCUMENTO (no único: un estudiante tiene varios periodos)
	NombreCompleto string          // NOMBRE_COMPLETO
	Curso          string          // CURSO
	Mes            string          // MES (etiqueta del periodo, ej: "Enero")
	TotalMensual   decimal.Decimal // TOTAL_MENSUAL, no negativo
	EstadoPago     PaymentStatus   // ESTADO_PAGO
	FechaPago      *time.Time      // FECHA_PAGO (opcional)
	MedioPago      string          // MEDIO_PAGO (opcional)
}

// IsPending indica si el periodo sigue sin pagar.
func (r *LedgerRow) IsPending() bool {
	return r.EstadoPago == PaymentStatusPending
}

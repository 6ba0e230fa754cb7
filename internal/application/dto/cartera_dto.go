package dto

import "github.com/shopspring/decimal"

// LedgerPeriodDTO detalle de un periodo en GET /api/cartera/:documento.
type LedgerPeriodDTO struct {
	Mes          string          `json:"mes"`
	TotalMensual decimal.Decimal `json:"total_mensual"`
	EstadoPago   string          `json:"estado_pago"`
	FechaPago    string          `json:"fecha_pago,omitempty"` // YYYY-MM-DD
	MedioPago    string          `json:"medio_pago,omitempty"`
}

// PaymentLinkDTO enlace a la pasarela simulada. Informativo: no confirma pagos.
type PaymentLinkDTO struct {
	URL       string `json:"url"`
	Reference string `json:"reference"`
	Notice    string `json:"notice"`
}

// StudentStatusDTO respuesta de GET /api/cartera/:documento.
type StudentStatusDTO struct {
	Documento            string            `json:"documento"`
	NombreCompleto       string            `json:"nombre_completo"`
	Curso                string            `json:"curso"`
	EstadoAgregado       string            `json:"estado_agregado"` // PAGADO | PENDIENTE
	TotalPendiente       decimal.Decimal   `json:"total_pendiente"`
	Periodos             []LedgerPeriodDTO `json:"periodos"`
	PaymentLink          *PaymentLinkDTO   `json:"payment_link,omitempty"`
	CertificateAvailable bool              `json:"certificate_available"`
	Message              string            `json:"message"`
}

// CertificateVerificationDTO respuesta de GET /api/certificados/verificar/:documento/:codigo.
type CertificateVerificationDTO struct {
	Documento      string `json:"documento"`
	Codigo         string `json:"codigo"`
	Valid          bool   `json:"valid"`
	NombreCompleto string `json:"nombre_completo,omitempty"`
	Curso          string `json:"curso,omitempty"`
	EstadoActual   string `json:"estado_actual,omitempty"` // ELEGIBLE | NO_ELEGIBLE | DESCONOCIDO
}

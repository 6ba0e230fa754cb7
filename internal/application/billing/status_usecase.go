package billing

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/colegio-cartera/internal/application/dto"
	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/cartera"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

// PaymentNotice aviso que acompaña siempre al enlace de pago.
const PaymentNotice = "Pasarela de pago simulada: el enlace es informativo y no constituye prueba de pago."

// PaymentConfig parámetros del enlace de pago simulado.
type PaymentConfig struct {
	GatewayURL string // ej: https://pse-demo.abogadoscol.edu.co/pay.html
	RefPrefix  string // ej: COL
}

// StatusUseCase consulta el estado de cartera de un estudiante.
type StatusUseCase struct {
	resolver *Resolver
	payment  PaymentConfig
	now      func() time.Time
	log      zerolog.Logger
}

// NewStatusUseCase construye el caso de uso. now permite fijar el reloj (zona horaria incluida).
func NewStatusUseCase(resolver *Resolver, payment PaymentConfig, now func() time.Time, log zerolog.Logger) *StatusUseCase {
	if now == nil {
		now = time.Now
	}
	return &StatusUseCase{resolver: resolver, payment: payment, now: now, log: log}
}

// GetStatus arma el estado de cartera del documento.
//
// Retorna:
//   - domain.ErrNotFound           si el documento no tiene filas (resultado normal, no una falla).
//   - domain.ErrSourceUnavailable  si la fuente no se pudo leer.
func (uc *StatusUseCase) GetStatus(ctx context.Context, documento string) (*dto.StudentStatusDTO, error) {
	rows, err := uc.resolver.Lookup(ctx, documento)
	if err != nil {
		uc.log.Warn().Err(err).Msg("cartera: fuente no disponible")
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}

	doc := cartera.NormalizeDocument(documento)
	first := rows[0]
	status := cartera.AggregateStatus(rows)
	pending := cartera.PendingTotal(rows)

	out := &dto.StudentStatusDTO{
		Documento:      doc,
		NombreCompleto: first.NombreCompleto,
		Curso:          first.Curso,
		EstadoAgregado: string(status),
		TotalPendiente: pending,
		Periodos:       periodsDTO(rows),
	}

	if status == entity.PaymentStatusPending {
		ref := cartera.PaymentReference(uc.payment.RefPrefix, uc.now())
		out.PaymentLink = &dto.PaymentLinkDTO{
			URL:       cartera.BuildPaymentRedirect(uc.payment.GatewayURL, doc, pending, first.NombreCompleto, ref),
			Reference: ref,
			Notice:    PaymentNotice,
		}
		out.Message = "El estudiante presenta pagos pendientes"
		return out, nil
	}

	out.CertificateAvailable = cartera.CertificateEligible(rows)
	out.Message = "El estudiante está al día; puede generar su certificado de paz y salvo"
	return out, nil
}

func periodsDTO(rows []*entity.LedgerRow) []dto.LedgerPeriodDTO {
	out := make([]dto.LedgerPeriodDTO, 0, len(rows))
	for _, r := range rows {
		p := dto.LedgerPeriodDTO{
			Mes:          r.Mes,
			TotalMensual: r.TotalMensual,
			EstadoPago:   string(r.EstadoPago),
			MedioPago:    r.MedioPago,
		}
		if r.FechaPago != nil {
			p.FechaPago = cartera.ShortDate(*r.FechaPago)
		}
		out = append(out, p)
	}
	return out
}

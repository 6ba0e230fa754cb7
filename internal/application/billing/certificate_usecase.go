package billing

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/colegio-cartera/internal/application/dto"
	"github.com/jhoicas/colegio-cartera/internal/application/ports"
	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/cartera"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

// InstitutionConfig datos de la institución que firma el paz y salvo.
type InstitutionConfig struct {
	Name      string
	Motto     string
	NIT       string // con dígito de verificación
	City      string
	Treasurer string
	VerifyURL string // base del QR; se le agrega ?documento=..&codigo=..
}

// CertificateUseCase expide y verifica certificados de paz y salvo.
type CertificateUseCase struct {
	resolver    *Resolver
	renderer    ports.CertificateRenderer
	institution InstitutionConfig
	now         func() time.Time
	log         zerolog.Logger
}

// NewCertificateUseCase construye el caso de uso inyectando el renderizador.
func NewCertificateUseCase(
	resolver *Resolver,
	renderer ports.CertificateRenderer,
	institution InstitutionConfig,
	now func() time.Time,
	log zerolog.Logger,
) *CertificateUseCase {
	if now == nil {
		now = time.Now
	}
	return &CertificateUseCase{
		resolver:    resolver,
		renderer:    renderer,
		institution: institution,
		now:         now,
		log:         log,
	}
}

// IssuedCertificate documento listo para descarga.
type IssuedCertificate struct {
	Content     []byte
	Filename    string
	ContentType string
	Code        string
}

// Issue genera el paz y salvo del documento.
//
// Retorna:
//   - domain.ErrNotFound           si no hay filas (estado desconocido, no se asume paz y salvo).
//   - *domain.IneligibleError      si hay periodos pendientes (errors.Is(err, domain.ErrIneligible)).
//   - domain.ErrSourceUnavailable  si la fuente no se pudo leer.
func (uc *CertificateUseCase) Issue(ctx context.Context, documento string) (*IssuedCertificate, error) {
	rows, err := uc.resolver.Lookup(ctx, documento)
	if err != nil {
		uc.log.Warn().Err(err).Msg("paz y salvo: fuente no disponible")
		return nil, err
	}

	switch cartera.Evaluate(rows) {
	case cartera.EligibilityUnknown:
		return nil, domain.ErrNotFound
	case cartera.EligibilityIneligible:
		return nil, &domain.IneligibleError{
			Reason:         "el estudiante tiene pagos pendientes",
			PendingTotal:   cartera.PendingTotal(rows),
			PendingPeriods: cartera.PendingPeriods(rows),
		}
	}

	cert := uc.BuildCertificate(rows, uc.now())
	content, err := uc.renderer.RenderCertificate(ctx, cert)
	if err != nil {
		return nil, fmt.Errorf("paz y salvo: renderizar: %w", err)
	}

	uc.log.Info().
		Str("documento", cert.Documento).
		Str("codigo", cert.VerificationCode).
		Msg("paz y salvo expedido")

	return &IssuedCertificate{
		Content:     content,
		Filename:    fmt.Sprintf("pazysalvo_%s.%s", cert.Documento, uc.renderer.Extension()),
		ContentType: uc.renderer.ContentType(),
		Code:        cert.VerificationCode,
	}, nil
}

// BuildCertificate redacta los campos de texto del certificado a partir de filas elegibles.
func (uc *CertificateUseCase) BuildCertificate(rows []*entity.LedgerRow, issuedAt time.Time) *ports.Certificate {
	first := rows[0]
	doc := cartera.NormalizeDocument(first.Documento)
	code := cartera.VerificationCode(doc)
	inst := uc.institution

	body := []string{
		fmt.Sprintf("La Tesorería del %s, identificado con NIT %s, certifica que el(la) estudiante %s, "+
			"identificado(a) con documento %s, perteneciente al curso %s, se encuentra a paz y salvo "+
			"por todo concepto económico con la institución a la fecha %s.",
			inst.Name, inst.NIT, first.NombreCompleto, doc, first.Curso, cartera.ShortDate(issuedAt)),
		"Este certificado se expide a solicitud del interesado para los fines que estime convenientes.",
		"Código de verificación: " + code,
		"Puede verificarse en línea o en la Secretaría del colegio.",
		fmt.Sprintf("%s, %s", inst.City, cartera.LongDateES(issuedAt)),
	}

	return &ports.Certificate{
		InstitutionName:  inst.Name,
		InstitutionMotto: inst.Motto,
		InstitutionNIT:   inst.NIT,
		City:             inst.City,
		TreasurerName:    inst.Treasurer,
		StudentName:      first.NombreCompleto,
		Documento:        doc,
		Curso:            first.Curso,
		Status:           string(entity.PaymentStatusPaid),
		VerificationCode: code,
		VerifyURL:        verifyURL(inst.VerifyURL, doc, code),
		IssuedAt:         issuedAt,
		Body:             body,
	}
}

// Verify recalcula el código del documento y lo compara con el recibido.
// Un código válido no implica que el estudiante siga al día: EstadoActual lo indica.
func (uc *CertificateUseCase) Verify(ctx context.Context, documento, codigo string) (*dto.CertificateVerificationDTO, error) {
	doc := cartera.NormalizeDocument(documento)
	out := &dto.CertificateVerificationDTO{
		Documento: doc,
		Codigo:    strings.ToUpper(strings.TrimSpace(codigo)),
		Valid:     cartera.VerifyCode(doc, codigo),
	}
	if !out.Valid {
		return out, nil
	}

	rows, err := uc.resolver.Lookup(ctx, doc)
	if err != nil {
		return nil, err
	}
	out.EstadoActual = string(cartera.Evaluate(rows))
	if len(rows) > 0 {
		out.NombreCompleto = rows[0].NombreCompleto
		out.Curso = rows[0].Curso
	}
	return out, nil
}

func verifyURL(base, doc, code string) string {
	if base == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sdocumento=%s&codigo=%s", base, sep, url.QueryEscape(doc), code)
}

package billing_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/colegio-cartera/internal/application/billing"
	"github.com/jhoicas/colegio-cartera/internal/application/ports"
	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeLedger struct {
	rows []*entity.LedgerRow
	err  error
}

func (f *fakeLedger) FindByDocument(_ context.Context, doc string) ([]*entity.LedgerRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	// devuelve todo: el resolver debe filtrar
	return f.rows, nil
}

type fakeRenderer struct {
	last *ports.Certificate
	err  error
}

func (f *fakeRenderer) RenderCertificate(_ context.Context, c *ports.Certificate) ([]byte, error) {
	f.last = c
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}
func (f *fakeRenderer) ContentType() string { return "application/pdf" }
func (f *fakeRenderer) Extension() string   { return "pdf" }

var fixedNow = time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func row(doc, name, mes string, amount string, status entity.PaymentStatus) *entity.LedgerRow {
	return &entity.LedgerRow{
		Documento:      doc,
		NombreCompleto: name,
		Curso:          "5A",
		Mes:            mes,
		TotalMensual:   decimal.RequireFromString(amount),
		EstadoPago:     status,
	}
}

func sampleLedger() *fakeLedger {
	return &fakeLedger{rows: []*entity.LedgerRow{
		row("123", "Ana María Gómez", "Enero", "150000", entity.PaymentStatusPaid),
		row("123", "Ana María Gómez", "Febrero", "150000", entity.PaymentStatusPending),
		row("123", "Ana María Gómez", "Marzo", "150000.50", entity.PaymentStatusPending),
		row("456", "Luis Pérez", "Enero", "120000", entity.PaymentStatusPaid),
		row("456", "Luis Pérez", "Febrero", "120000", entity.PaymentStatusPaid),
	}}
}

func newStatus(l *fakeLedger) *billing.StatusUseCase {
	return billing.NewStatusUseCase(billing.NewResolver(l), billing.PaymentConfig{
		GatewayURL: "https://pse-demo.abogadoscol.edu.co/pay.html",
		RefPrefix:  "COL",
	}, clock, zerolog.Nop())
}

func newCertificate(l *fakeLedger, r *fakeRenderer) *billing.CertificateUseCase {
	return billing.NewCertificateUseCase(billing.NewResolver(l), r, billing.InstitutionConfig{
		Name:      "Colegio Abogados Col",
		Motto:     "Formando líderes",
		NIT:       "900123456-8",
		City:      "Bogotá D.C.",
		Treasurer: "Lic. Carolina Suárez",
		VerifyURL: "https://colegio.example/verificar",
	}, clock, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// StatusUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStatus_Pendiente(t *testing.T) {
	out, err := newStatus(sampleLedger()).GetStatus(context.Background(), " 123 ")
	require.NoError(t, err)

	assert.Equal(t, "123", out.Documento)
	assert.Equal(t, "Ana María Gómez", out.NombreCompleto)
	assert.Equal(t, "PENDIENTE", out.EstadoAgregado)
	assert.Equal(t, "300000.5", out.TotalPendiente.String())
	assert.Len(t, out.Periodos, 3)
	assert.False(t, out.CertificateAvailable)

	require.NotNil(t, out.PaymentLink)
	assert.Equal(t, "COL20240305-001", out.PaymentLink.Reference)
	assert.Equal(t, billing.PaymentNotice, out.PaymentLink.Notice)
	u, err := url.Parse(out.PaymentLink.URL)
	require.NoError(t, err)
	assert.Equal(t, "A665A45920", u.Query().Get("code"))
	assert.Equal(t, "300000.5", u.Query().Get("amount"))
	assert.Equal(t, "Ana María Gómez", u.Query().Get("name"))
	assert.Equal(t, "COL20240305-001", u.Query().Get("ref"))
}

func TestGetStatus_AlDia(t *testing.T) {
	out, err := newStatus(sampleLedger()).GetStatus(context.Background(), "456")
	require.NoError(t, err)
	assert.Equal(t, "PAGADO", out.EstadoAgregado)
	assert.True(t, out.TotalPendiente.IsZero())
	assert.Nil(t, out.PaymentLink)
	assert.True(t, out.CertificateAvailable)
}

func TestGetStatus_NoEncontrado(t *testing.T) {
	_, err := newStatus(sampleLedger()).GetStatus(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStatus_FuenteCaida(t *testing.T) {
	_, err := newStatus(&fakeLedger{err: errors.New("disco lleno")}).GetStatus(context.Background(), "123")
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CertificateUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_Elegible(t *testing.T) {
	r := &fakeRenderer{}
	cert, err := newCertificate(sampleLedger(), r).Issue(context.Background(), "456")
	require.NoError(t, err)

	assert.Equal(t, "pazysalvo_456.pdf", cert.Filename)
	assert.Equal(t, "application/pdf", cert.ContentType)
	assert.Equal(t, "B3A8E0E1F9", cert.Code)

	require.NotNil(t, r.last)
	assert.Equal(t, "Luis Pérez", r.last.StudentName)
	assert.Equal(t, "900123456-8", r.last.InstitutionNIT)
	assert.Equal(t, "https://colegio.example/verificar?documento=456&codigo=B3A8E0E1F9", r.last.VerifyURL)
	assert.Contains(t, r.last.Body, "Código de verificación: B3A8E0E1F9")
	assert.Contains(t, r.last.Body, "Bogotá D.C., 05 de marzo de 2024")
	assert.Contains(t, r.last.Body[0], "2024-03-05")
}

func TestIssue_NoElegible(t *testing.T) {
	r := &fakeRenderer{}
	_, err := newCertificate(sampleLedger(), r).Issue(context.Background(), "123")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIneligible)

	var ie *domain.IneligibleError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "300000.5", ie.PendingTotal.String())
	assert.Equal(t, []string{"Febrero", "Marzo"}, ie.PendingPeriods)
	assert.Nil(t, r.last, "no se renderiza nada")
}

func TestIssue_SinFilasNoEsPazYSalvo(t *testing.T) {
	r := &fakeRenderer{}
	_, err := newCertificate(sampleLedger(), r).Issue(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrIneligible)
	assert.Nil(t, r.last)
}

func TestIssue_ErrorDeRender(t *testing.T) {
	_, err := newCertificate(sampleLedger(), &fakeRenderer{err: errors.New("fuente")}).Issue(context.Background(), "456")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestVerify(t *testing.T) {
	uc := newCertificate(sampleLedger(), &fakeRenderer{})

	out, err := uc.Verify(context.Background(), "456", "b3a8e0e1f9")
	require.NoError(t, err)
	assert.True(t, out.Valid)
	assert.Equal(t, "ELEGIBLE", out.EstadoActual)
	assert.Equal(t, "Luis Pérez", out.NombreCompleto)

	out, err = uc.Verify(context.Background(), "123", "A665A45920")
	require.NoError(t, err)
	assert.True(t, out.Valid)
	assert.Equal(t, "NO_ELEGIBLE", out.EstadoActual)

	out, err = uc.Verify(context.Background(), "456", "A665A45920")
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Empty(t, out.EstadoActual)
}

package cartera_test

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/colegio-cartera/internal/domain/cartera"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var codeRe = regexp.MustCompile(`^[0-9A-F]{10}$`)

func row(doc, mes string, amount int64, status entity.PaymentStatus) *entity.LedgerRow {
	return &entity.LedgerRow{
		Documento:      doc,
		NombreCompleto: "Ana María Gómez",
		Curso:          "5A",
		Mes:            mes,
		TotalMensual:   decimal.NewFromInt(amount),
		EstadoPago:     status,
	}
}

func ledger() []*entity.LedgerRow {
	return []*entity.LedgerRow{
		row("123", "Enero", 100000, entity.PaymentStatusPending),
		row("123", "Febrero", 100000, entity.PaymentStatusPaid),
		row("456", "Enero", 150000, entity.PaymentStatusPaid),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Lookup / normalización
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterByDocument_DocumentoInexistenteDevuelveVacio(t *testing.T) {
	for _, doc := range []string{"999", "12", "1234", "abc"} {
		rows := cartera.FilterByDocument(ledger(), doc)
		assert.NotNil(t, rows)
		assert.Empty(t, rows, "documento %s no debe tener filas", doc)
		assert.False(t, cartera.CertificateEligible(rows))
		assert.Equal(t, cartera.EligibilityUnknown, cartera.Evaluate(rows))
	}
}

func TestFilterByDocument_ComparaComoTexto(t *testing.T) {
	rows := []*entity.LedgerRow{
		row("123.0", "Enero", 1, entity.PaymentStatusPaid),
		row(" 123 ", "Febrero", 1, entity.PaymentStatusPaid),
		row("1230", "Marzo", 1, entity.PaymentStatusPaid),
	}
	got := cartera.FilterByDocument(rows, "123")
	require.Len(t, got, 2)
	assert.Equal(t, "Enero", got[0].Mes)
	assert.Equal(t, "Febrero", got[1].Mes)
}

func TestNormalizeDocument(t *testing.T) {
	assert.Equal(t, "123", cartera.NormalizeDocument(" 123 "))
	assert.Equal(t, "123", cartera.NormalizeDocument("123.00"))
	assert.Equal(t, "123.5", cartera.NormalizeDocument("123.5"))
	assert.Equal(t, "CE-77", cartera.NormalizeDocument("CE-77"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado agregado / total pendiente / elegibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregateStatus_UnPendienteBloquea(t *testing.T) {
	rows := []*entity.LedgerRow{row("1", "Marzo", 10, entity.PaymentStatusPending)}
	for i := 0; i < 11; i++ {
		rows = append(rows, row("1", fmt.Sprintf("M%d", i), 10, entity.PaymentStatusPaid))
	}
	assert.Equal(t, entity.PaymentStatusPending, cartera.AggregateStatus(rows))
	assert.False(t, cartera.CertificateEligible(rows))
	assert.Equal(t, cartera.EligibilityIneligible, cartera.Evaluate(rows))
}

func TestAggregateStatus_TodoPagado(t *testing.T) {
	rows := []*entity.LedgerRow{
		row("1", "Enero", 10, entity.PaymentStatusPaid),
		row("1", "Febrero", 10, entity.PaymentStatusPaid),
	}
	assert.Equal(t, entity.PaymentStatusPaid, cartera.AggregateStatus(rows))
	assert.True(t, cartera.CertificateEligible(rows))
	assert.Equal(t, cartera.EligibilityEligible, cartera.Evaluate(rows))
}

func TestPendingTotal_SumaExacta(t *testing.T) {
	rows := []*entity.LedgerRow{
		{Mes: "Enero", TotalMensual: decimal.RequireFromString("0.10"), EstadoPago: entity.PaymentStatusPending},
		{Mes: "Febrero", TotalMensual: decimal.RequireFromString("0.20"), EstadoPago: entity.PaymentStatusPending},
		{Mes: "Marzo", TotalMensual: decimal.RequireFromString("999"), EstadoPago: entity.PaymentStatusPaid},
	}
	assert.True(t, decimal.RequireFromString("0.30").Equal(cartera.PendingTotal(rows)))
	assert.Equal(t, []string{"Enero", "Febrero"}, cartera.PendingPeriods(rows))
}

func TestPendingTotal_CeroSinPendientes(t *testing.T) {
	assert.True(t, cartera.PendingTotal(nil).IsZero())
	assert.True(t, cartera.PendingTotal([]*entity.LedgerRow{row("1", "Enero", 50, entity.PaymentStatusPaid)}).IsZero())
}

// Escenario: documento 123 con Enero pendiente y Febrero pagado.
func TestEscenario_Documento123Pendiente(t *testing.T) {
	rows := cartera.FilterByDocument(ledger(), "123")
	require.Len(t, rows, 2)
	assert.Equal(t, entity.PaymentStatusPending, cartera.AggregateStatus(rows))
	assert.True(t, decimal.NewFromInt(100000).Equal(cartera.PendingTotal(rows)))
	assert.False(t, cartera.CertificateEligible(rows))
}

// Escenario: documento 456 con un único periodo pagado.
func TestEscenario_Documento456Elegible(t *testing.T) {
	rows := cartera.FilterByDocument(ledger(), "456")
	require.Len(t, rows, 1)
	assert.True(t, cartera.CertificateEligible(rows))
}

// ──────────────────────────────────────────────────────────────────────────────
// Código de verificación
// ──────────────────────────────────────────────────────────────────────────────

func TestVerificationCode_VectorConocido(t *testing.T) {
	// sha256("123") = a665a45920422f9d417e4867efdc4fb8a04a1f3fff1fa07e998e86f7f7a27ae3
	assert.Equal(t, "A665A45920", cartera.VerificationCode("123"))
}

func TestVerificationCode_DeterministaYFormato(t *testing.T) {
	for _, doc := range []string{"123", "456", "789", "1020304050", "CE-998877"} {
		c1 := cartera.VerificationCode(doc)
		c2 := cartera.VerificationCode(doc)
		assert.Equal(t, c1, c2, "mismo documento, mismo código")
		assert.Regexp(t, codeRe, c1)
	}
}

func TestVerificationCode_DocumentosDistintos(t *testing.T) {
	seen := make(map[string]string)
	for i := 1000000; i < 1002000; i++ {
		doc := fmt.Sprint(i)
		code := cartera.VerificationCode(doc)
		prev, dup := seen[code]
		require.False(t, dup, "colisión entre %s y %s", prev, doc)
		seen[code] = doc
	}
}

func TestVerifyCode_IgnoraMayusculas(t *testing.T) {
	code := cartera.VerificationCode("456")
	assert.True(t, cartera.VerifyCode("456", code))
	assert.True(t, cartera.VerifyCode("456", " "+strings.ToLower(code)+" "))
	assert.False(t, cartera.VerifyCode("457", code))
}

// ──────────────────────────────────────────────────────────────────────────────
// Enlace de pago y radicado
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildPaymentRedirect(t *testing.T) {
	link := cartera.BuildPaymentRedirect(
		"https://pse-demo.example.edu.co/pay.html", "123",
		decimal.NewFromInt(100000), "Ana María Gómez", "COL20240305-001",
	)
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "pse-demo.example.edu.co", u.Host)
	assert.Equal(t, cartera.VerificationCode("123"), u.Query().Get("code"))
	assert.Equal(t, "100000", u.Query().Get("amount"))
	assert.Equal(t, "Ana María Gómez", u.Query().Get("name"))
	assert.Equal(t, "COL20240305-001", u.Query().Get("ref"))
	assert.Contains(t, link, "name=Ana%20Mar%C3%ADa%20G%C3%B3mez")
	assert.NotContains(t, link, "$")
}

func TestBuildPaymentRedirect_URLConQuery(t *testing.T) {
	link := cartera.BuildPaymentRedirect("https://pay.example/p?x=1", "1", decimal.RequireFromString("12.50"), "A&B", "")
	assert.Contains(t, link, "?x=1&code=")
	assert.Contains(t, link, "amount=12.5")
	assert.Contains(t, link, "name=A%26B")
	assert.NotContains(t, link, "ref=")
}

func TestPaymentReference(t *testing.T) {
	at := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "COL20240305-001", cartera.PaymentReference("COL", at))
}

// Escenario: PQRS del documento 789 radicada el 2024-03-05.
func TestTrackingCode_Escenario789(t *testing.T) {
	at := time.Date(2024, 3, 5, 16, 45, 0, 0, time.UTC)
	rad := cartera.TrackingCode("789", at)
	assert.Regexp(t, `^RAD-20240305-[0-9A-Z]{10}$`, rad)
	assert.Equal(t, "RAD-20240305-"+cartera.VerificationCode("789"), rad)
}

func TestTrackingCode_MismoDiaColisiona(t *testing.T) {
	morning := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, cartera.TrackingCode("789", morning), cartera.TrackingCode("789", evening))
	assert.NotEqual(t, cartera.TrackingCode("789", morning), cartera.TrackingCode("789", morning.AddDate(0, 0, 1)))
}

func TestLongDateES(t *testing.T) {
	assert.Equal(t, "05 de marzo de 2024", cartera.LongDateES(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-12-31", cartera.ShortDate(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}

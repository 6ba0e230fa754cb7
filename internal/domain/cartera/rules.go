// Package cartera contiene las reglas puras de cartera estudiantil:
// estado agregado, total pendiente, código de verificación, elegibilidad
// para el paz y salvo, enlace de pago simulado y número de radicado.
//
// Ninguna función de este paquete hace I/O ni modifica las filas recibidas.
package cartera

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

// VerificationCodeLength longitud fija del código de verificación.
const VerificationCodeLength = 10

// Eligibility resultado de evaluar el paz y salvo.
type Eligibility string

const (
	// EligibilityEligible sin periodos pendientes y con al menos una fila.
	EligibilityEligible Eligibility = "ELEGIBLE"
	// EligibilityIneligible al menos un periodo pendiente.
	EligibilityIneligible Eligibility = "NO_ELEGIBLE"
	// EligibilityUnknown sin filas: la ausencia de deuda no prueba que esté al día.
	EligibilityUnknown Eligibility = "DESCONOCIDO"
)

// numericDocRe captura documentos numéricos exportados como flotantes ("123.0").
var numericDocRe = regexp.MustCompile(`^(\d+)\.0+$`)

// NormalizeDocument convierte un documento a su forma de comparación:
// sin espacios alrededor y sin la parte decimal vacía que dejan las hojas de cálculo.
func NormalizeDocument(doc string) string {
	doc = strings.TrimSpace(doc)
	if m := numericDocRe.FindStringSubmatch(doc); m != nil {
		return m[1]
	}
	return doc
}

// FilterByDocument devuelve las filas cuyo documento coincide con doc tras normalizar ambos.
// Devuelve un slice vacío (no nil) si no hay coincidencias.
func FilterByDocument(rows []*entity.LedgerRow, doc string) []*entity.LedgerRow {
	want := NormalizeDocument(doc)
	out := make([]*entity.LedgerRow, 0)
	if want == "" {
		return out
	}
	for _, r := range rows {
		if r != nil && NormalizeDocument(r.Documento) == want {
			out = append(out, r)
		}
	}
	return out
}

// ParseStatus interpreta ESTADO_PAGO (PAGADO/PENDIENTE, también PAID/PENDING).
// Cualquier otro valor es un dato mal formado.
func ParseStatus(s string) (entity.PaymentStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PAGADO", "PAID":
		return entity.PaymentStatusPaid, nil
	case "PENDIENTE", "PENDING":
		return entity.PaymentStatusPending, nil
	default:
		return "", fmt.Errorf("ESTADO_PAGO desconocido %q", s)
	}
}

// AggregateStatus es PENDIENTE si al menos un periodo está pendiente; en otro caso PAGADO.
func AggregateStatus(rows []*entity.LedgerRow) entity.PaymentStatus {
	for _, r := range rows {
		if r.IsPending() {
			return entity.PaymentStatusPending
		}
	}
	return entity.PaymentStatusPaid
}

// PendingTotal suma exacta de TotalMensual de los periodos pendientes.
func PendingTotal(rows []*entity.LedgerRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if r.IsPending() {
			total = total.Add(r.TotalMensual)
		}
	}
	return total
}

// PendingPeriods etiquetas de los periodos pendientes, en el orden de la fuente.
func PendingPeriods(rows []*entity.LedgerRow) []string {
	var out []string
	for _, r := range rows {
		if r.IsPending() {
			out = append(out, r.Mes)
		}
	}
	return out
}

// VerificationCode deriva el código de verificación del documento:
// SHA-256 del documento, hexadecimal, primeros 10 caracteres en mayúscula.
func VerificationCode(doc string) string {
	sum := sha256.Sum256([]byte(doc))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:VerificationCodeLength]
}

// VerifyCode compara un código recibido con el recalculado para el documento.
func VerifyCode(doc, code string) bool {
	return strings.EqualFold(strings.TrimSpace(code), VerificationCode(doc))
}

// CertificateEligible verdadero solo si hay filas y ninguna está pendiente.
func CertificateEligible(rows []*entity.LedgerRow) bool {
	return len(rows) > 0 && AggregateStatus(rows) == entity.PaymentStatusPaid
}

// Evaluate distingue las tres situaciones posibles frente al paz y salvo.
func Evaluate(rows []*entity.LedgerRow) Eligibility {
	switch {
	case len(rows) == 0:
		return EligibilityUnknown
	case CertificateEligible(rows):
		return EligibilityEligible
	default:
		return EligibilityIneligible
	}
}

// PaymentReference referencia del enlace de pago: <prefijo><YYYYMMDD>-001.
func PaymentReference(prefix string, at time.Time) string {
	return fmt.Sprintf("%s%s-001", prefix, at.Format("20060102"))
}

// BuildPaymentRedirect arma el enlace a la pasarela de pago simulada.
// Es solo informativo: no existe confirmación de vuelta y nunca prueba un pago.
func BuildPaymentRedirect(gatewayURL, doc string, amount decimal.Decimal, name, ref string) string {
	q := []string{
		"code=" + VerificationCode(doc),
		"amount=" + amount.String(),
		"name=" + percentEncode(name),
	}
	if ref != "" {
		q = append(q, "ref="+percentEncode(ref))
	}
	sep := "?"
	if strings.Contains(gatewayURL, "?") {
		sep = "&"
	}
	return gatewayURL + sep + strings.Join(q, "&")
}

// percentEncode codifica como componente de URL con espacios como %20.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// TrackingCode número de radicado: RAD-<YYYYMMDD>-<código de verificación>.
// Dos radicaciones del mismo documento el mismo día producen el mismo número.
func TrackingCode(doc string, submittedAt time.Time) string {
	return fmt.Sprintf("RAD-%s-%s", submittedAt.Format("20060102"), VerificationCode(doc))
}

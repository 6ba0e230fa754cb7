// Package pdf implementa el certificado de paz y salvo en PDF con Maroto v2.
//
// Layout de la página carta:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  [LOGO opcional]  NOMBRE INSTITUCIÓN / lema / NIT            │
//	│  ─────────────────────────────────────────────────────────  │
//	│              CERTIFICADO DE PAZ Y SALVO                      │
//	│  Cuerpo: párrafos redactados por el caso de uso              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Firma: ______  Tesorero(a) / Tesorería                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: código de verificación + QR opcional                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/colegio-cartera/internal/application/ports"
)

var _ ports.CertificateRenderer = (*MarotoCertificateGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

// Palette colores del certificado (tema de la institución).
type Palette struct {
	Primary *props.Color
	Accent  *props.Color
	Gray    *props.Color
}

// DefaultPalette azul institucional con acento rosado.
func DefaultPalette() Palette {
	return Palette{
		Primary: &props.Color{Red: 27, Green: 22, Blue: 140},
		Accent:  &props.Color{Red: 244, Green: 59, Blue: 99},
		Gray:    &props.Color{Red: 100, Green: 100, Blue: 100},
	}
}

// PaletteFromHex construye la paleta desde colores "#RRGGBB"; los inválidos conservan el valor por defecto.
func PaletteFromHex(primary, accent string) Palette {
	p := DefaultPalette()
	if c, ok := parseHex(primary); ok {
		p.Primary = c
	}
	if c, ok := parseHex(accent); ok {
		p.Accent = c
	}
	return p
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCertificateGenerator implementa ports.CertificateRenderer usando Maroto v2.
type MarotoCertificateGenerator struct {
	palette Palette
	logo    *Logo
}

// NewMarotoCertificateGenerator construye el generador. logo puede ser nil.
func NewMarotoCertificateGenerator(palette Palette, logo *Logo) *MarotoCertificateGenerator {
	return &MarotoCertificateGenerator{palette: palette, logo: logo}
}

// ContentType tipo MIME del documento.
func (g *MarotoCertificateGenerator) ContentType() string { return "application/pdf" }

// Extension extensión del archivo.
func (g *MarotoCertificateGenerator) Extension() string { return "pdf" }

// RenderCertificate genera el PDF y devuelve sus bytes.
func (g *MarotoCertificateGenerator) RenderCertificate(_ context.Context, cert *ports.Certificate) ([]byte, error) {
	if cert == nil {
		return nil, fmt.Errorf("pdf: certificado vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(20).WithRightMargin(20).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Certificado de Paz y Salvo", true).
		WithAuthor(cert.InstitutionName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(cert))
	m.AddRows(line.NewRow(2, props.Line{Color: g.palette.Primary, Thickness: 0.6}))
	m.AddRows(g.titleRow())
	for _, r := range g.bodyRows(cert) {
		m.AddRows(r)
	}
	m.AddRows(row.New(18))
	for _, r := range g.signatureRows(cert) {
		m.AddRows(r)
	}
	m.AddRows(row.New(6))
	m.AddRows(line.NewRow(1, props.Line{Color: g.palette.Gray, Thickness: 0.3}))
	m.AddRows(g.footerRow(cert))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: logo (si está disponible) + nombre, lema y NIT.
func (g *MarotoCertificateGenerator) headerRow(cert *ports.Certificate) core.Row {
	info := []core.Component{
		text.New(strings.ToUpper(cert.InstitutionName), props.Text{
			Style: fontstyle.Bold, Size: 15, Color: g.palette.Primary, Align: align.Center, Top: 2,
		}),
		text.New(cert.InstitutionMotto, props.Text{
			Style: fontstyle.Italic, Size: 9, Color: g.palette.Gray, Align: align.Center, Top: 10,
		}),
		text.New("NIT "+cert.InstitutionNIT, props.Text{
			Size: 8, Color: g.palette.Gray, Align: align.Center, Top: 16,
		}),
	}

	if g.logo.Available() {
		return row.New(26).Add(
			col.New(3).Add(image.NewFromBytes(g.logo.Bytes, g.logo.Extension, props.Rect{
				Percent: 90, Center: true,
			})),
			col.New(9).Add(info...),
		)
	}
	return row.New(26).Add(col.New(12).Add(info...))
}

func (g *MarotoCertificateGenerator) titleRow() core.Row {
	return row.New(20).Add(col.New(12).Add(
		text.New("CERTIFICADO DE PAZ Y SALVO", props.Text{
			Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: g.palette.Accent, Top: 8,
		}),
	))
}

// bodyRows: un row por párrafo; la altura se estima por longitud para que Maroto no recorte.
func (g *MarotoCertificateGenerator) bodyRows(cert *ports.Certificate) []core.Row {
	rows := make([]core.Row, 0, len(cert.Body))
	for _, p := range cert.Body {
		style := fontstyle.Normal
		if strings.HasPrefix(p, "Código de verificación") {
			style = fontstyle.Bold
		}
		rows = append(rows, row.New(paragraphHeight(p)).Add(col.New(12).Add(
			text.New(p, props.Text{Size: 11, Style: style, Align: align.Justify, Top: 2}),
		)))
	}
	return rows
}

func (g *MarotoCertificateGenerator) signatureRows(cert *ports.Certificate) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("________________________________", props.Text{Size: 10}))),
		row.New(6).Add(col.New(12).Add(text.New(cert.TreasurerName, props.Text{Style: fontstyle.Bold, Size: 10}))),
		row.New(6).Add(col.New(12).Add(text.New("Tesorería - "+cert.InstitutionName, props.Text{
			Size: 9, Color: g.palette.Gray,
		}))),
	}
}

// footerRow: código de verificación y QR cuando hay URL de verificación.
func (g *MarotoCertificateGenerator) footerRow(cert *ports.Certificate) core.Row {
	legend := text.New(
		fmt.Sprintf("Código de verificación: %s\nDocumento: %s   |   Curso: %s", cert.VerificationCode, cert.Documento, cert.Curso),
		props.Text{Size: 8, Color: g.palette.Gray, Top: 3},
	)
	if cert.VerifyURL == "" {
		return row.New(14).Add(col.New(12).Add(legend))
	}
	return row.New(34).Add(
		col.New(9).Add(legend, text.New("Escanee el código QR para verificar este certificado.", props.Text{
			Size: 8, Color: g.palette.Primary, Top: 14,
		})),
		col.New(3).Add(code.NewQr(cert.VerifyURL, props.Rect{Percent: 95, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// paragraphHeight ~95 caracteres por línea a 11pt en carta con márgenes de 20 mm.
func paragraphHeight(p string) float64 {
	lines := len([]rune(p))/95 + 1
	return float64(lines)*5.5 + 4
}

func parseHex(s string) (*props.Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return nil, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return nil, false
	}
	return &props.Color{Red: int(v >> 16 & 0xFF), Green: int(v >> 8 & 0xFF), Blue: int(v & 0xFF)}, true
}

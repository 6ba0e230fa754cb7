package pdf_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/colegio-cartera/internal/application/ports"
	"github.com/jhoicas/colegio-cartera/internal/infrastructure/pdf"
)

func sampleCertificate() *ports.Certificate {
	return &ports.Certificate{
		InstitutionName:  "Colegio Abogados Col",
		InstitutionMotto: "Formando con excelencia",
		InstitutionNIT:   "900123456-7",
		City:             "Bogotá D.C.",
		TreasurerName:    "Lic. Carolina Suárez",
		StudentName:      "Luis Pérez",
		Documento:        "456",
		Curso:            "3B",
		Status:           "PAGADO",
		VerificationCode: "B3A8E0E1F9",
		IssuedAt:         time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		Body: []string{
			"La Tesorería del Colegio Abogados Col certifica que el estudiante Luis Pérez se encuentra a paz y salvo.",
			"Código de verificación: B3A8E0E1F9",
		},
	}
}

func writePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 27, G: 22, B: 140, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestRenderCertificate_SinLogoNiQR(t *testing.T) {
	g := pdf.NewMarotoCertificateGenerator(pdf.DefaultPalette(), nil)

	out, err := g.RenderCertificate(context.Background(), sampleCertificate())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, "application/pdf", g.ContentType())
	assert.Equal(t, "pdf", g.Extension())
}

func TestRenderCertificate_ConLogoYQR(t *testing.T) {
	logo, err := pdf.LoadLogo(writePNG(t))
	require.NoError(t, err)
	require.True(t, logo.Available())

	cert := sampleCertificate()
	cert.VerifyURL = "https://colegio.example/verificar/456/B3A8E0E1F9"
	g := pdf.NewMarotoCertificateGenerator(pdf.PaletteFromHex("#0a3d62", "#e58e26"), logo)

	out, err := g.RenderCertificate(context.Background(), cert)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderCertificate_Nil(t *testing.T) {
	_, err := pdf.NewMarotoCertificateGenerator(pdf.DefaultPalette(), nil).RenderCertificate(context.Background(), nil)
	assert.Error(t, err)
}

func TestLoadLogo(t *testing.T) {
	logo, err := pdf.LoadLogo("")
	require.NoError(t, err)
	assert.False(t, logo.Available())

	_, err = pdf.LoadLogo(filepath.Join(t.TempDir(), "logo.gif"))
	assert.Error(t, err)

	_, err = pdf.LoadLogo(filepath.Join(t.TempDir(), "no-existe.png"))
	assert.Error(t, err)
}

func TestPaletteFromHex_InvalidoConservaDefecto(t *testing.T) {
	def := pdf.DefaultPalette()
	p := pdf.PaletteFromHex("azul", "#FF0000")
	assert.Equal(t, def.Primary, p.Primary)
	assert.Equal(t, 255, p.Accent.Red)
	assert.Equal(t, 0, p.Accent.Green)
}

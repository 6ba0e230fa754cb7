package ports

import (
	"context"
	"time"
)

// Certificate campos de texto del paz y salvo. El renderizador decide el formato;
// el caso de uso nunca aporta estilos.
type Certificate struct {
	InstitutionName  string
	InstitutionMotto string
	InstitutionNIT   string // con dígito de verificación, ej: "900123456-8"
	City             string
	TreasurerName    string

	StudentName      string
	Documento        string
	Curso            string
	Status           string
	VerificationCode string
	VerifyURL        string // destino del QR; vacío = sin QR

	IssuedAt time.Time
	Body     []string // párrafos ya redactados, en orden
}

// CertificateRenderer produce el documento binario descargable.
type CertificateRenderer interface {
	RenderCertificate(ctx context.Context, cert *Certificate) ([]byte, error)
	ContentType() string
	Extension() string
}

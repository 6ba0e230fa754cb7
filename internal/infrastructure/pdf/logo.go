package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
)

// Logo imagen opcional del encabezado del certificado.
type Logo struct {
	Bytes     []byte
	Extension extension.Type
}

// Available verdadero si hay un logo utilizable. Seguro sobre receptor nil.
func (l *Logo) Available() bool {
	return l != nil && len(l.Bytes) > 0
}

// LoadLogo lee el logo desde disco. path vacío devuelve (nil, nil): el certificado
// se genera con el encabezado de texto. Solo se aceptan PNG y JPG.
func LoadLogo(path string) (*Logo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	var ext extension.Type
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		ext = extension.Png
	case ".jpg", ".jpeg":
		ext = extension.Jpg
	default:
		return nil, fmt.Errorf("pdf: formato de logo no soportado %q", filepath.Ext(path))
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdf: leer logo: %w", err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("pdf: logo vacío %s", path)
	}
	return &Logo{Bytes: b, Extension: ext}, nil
}

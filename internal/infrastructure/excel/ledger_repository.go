// Package excel implementa la fuente de cartera y la bitácora de PQRS sobre
// libros .xlsx usando excelize.
package excel

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/cartera"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// DefaultLedgerSheet hoja de cartera esperada en el libro.
const DefaultLedgerSheet = "CARTERA_ESTUDIANTES"

// Columnas obligatorias de la hoja de cartera.
const (
	ColDocumento      = "DOCUMENTO"
	ColNombreCompleto = "NOMBRE_COMPLETO"
	ColCurso          = "CURSO"
	ColMes            = "MES"
	ColTotalMensual   = "TOTAL_MENSUAL"
	ColEstadoPago     = "ESTADO_PAGO"
	ColFechaPago      = "FECHA_PAGO"
	ColMedioPago      = "MEDIO_PAGO"
)

// LedgerColumns columnas requeridas, en el orden canónico.
var LedgerColumns = []string{
	ColDocumento, ColNombreCompleto, ColCurso, ColMes,
	ColTotalMensual, ColEstadoPago, ColFechaPago, ColMedioPago,
}

// LedgerRepo lee la cartera de un libro .xlsx.
// El libro se abre en cada consulta: nunca se responde con datos en caché.
type LedgerRepo struct {
	path  string
	sheet string
}

// NewLedgerRepository construye el adaptador. sheet vacío = CARTERA_ESTUDIANTES.
func NewLedgerRepository(path, sheet string) *LedgerRepo {
	if sheet == "" {
		sheet = DefaultLedgerSheet
	}
	return &LedgerRepo{path: path, sheet: sheet}
}

// FindByDocument filtra las filas cuyo DOCUMENTO coincide como texto normalizado.
func (r *LedgerRepo) FindByDocument(ctx context.Context, documento string) ([]*entity.LedgerRow, error) {
	rows, err := r.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return cartera.FilterByDocument(rows, documento), nil
}

// ReadAll lee la hoja completa (herramienta de carga inicial).
func (r *LedgerRepo) ReadAll(_ context.Context) ([]*entity.LedgerRow, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: abrir %s: %v", domain.ErrSourceUnavailable, r.path, err)
	}
	defer func() { _ = f.Close() }()

	raw, err := f.GetRows(r.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: leer hoja %s: %v", domain.ErrSourceUnavailable, r.sheet, err)
	}
	return ParseLedgerRows(raw)
}

// ParseLedgerRows convierte una tabla (primera fila = encabezados) en filas de cartera.
// Cualquier encabezado faltante o celda mal formada invalida toda la fuente.
func ParseLedgerRows(raw [][]string) ([]*entity.LedgerRow, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: hoja de cartera vacía", domain.ErrSourceUnavailable)
	}
	idx, err := headerIndex(raw[0], LedgerColumns)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.LedgerRow, 0, len(raw)-1)
	for i, cells := range raw[1:] {
		line := i + 2 // fila de la hoja (1 = encabezados)
		get := func(col string) string {
			j := idx[col]
			if j >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[j])
		}
		if isBlankRow(cells) {
			continue
		}

		amount, err := ParseAmount(get(ColTotalMensual))
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: %v", domain.ErrSourceUnavailable, line, err)
		}
		status, err := cartera.ParseStatus(get(ColEstadoPago))
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: %v", domain.ErrSourceUnavailable, line, err)
		}
		fecha, err := ParseDate(get(ColFechaPago))
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: %v", domain.ErrSourceUnavailable, line, err)
		}

		out = append(out, &entity.LedgerRow{
			Documento:      cartera.NormalizeDocument(get(ColDocumento)),
			NombreCompleto: get(ColNombreCompleto),
			Curso:          get(ColCurso),
			Mes:            get(ColMes),
			TotalMensual:   amount,
			EstadoPago:     status,
			FechaPago:      fecha,
			MedioPago:      get(ColMedioPago),
		})
	}
	return out, nil
}

func headerIndex(header []string, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: columnas faltantes: %s", domain.ErrSourceUnavailable, strings.Join(missing, ", "))
	}
	return idx, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ParseAmount interpreta TOTAL_MENSUAL. Acepta "100000", "100000.50", "$ 150.000",
// "1.250.000", "1,250,000" y "1.250.000,75". Un único separador seguido de exactamente
// tres dígitos es de miles (los pesos no tienen milésimas); agrupaciones irregulares se rechazan.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("$", "", " ", "", "COP", "").Replace(s)
	if clean == "" {
		return decimal.Zero, fmt.Errorf("TOTAL_MENSUAL vacío")
	}
	normalized, ok := normalizeAmount(clean)
	if !ok {
		return decimal.Zero, fmt.Errorf("TOTAL_MENSUAL ambiguo o inválido %q", s)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("TOTAL_MENSUAL inválido %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("TOTAL_MENSUAL negativo %q", s)
	}
	return d, nil
}

// normalizeAmount deja el número con "." decimal y sin separadores de miles.
func normalizeAmount(s string) (string, bool) {
	lastDot, lastComma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// ambos: el último es el decimal ("1.250.000,75" o "1,250,000.75")
		dec, thousands := ",", "."
		if lastDot > lastComma {
			dec, thousands = ".", ","
		}
		intPart, frac, _ := strings.Cut(s, dec)
		if strings.Contains(frac, dec) || strings.Contains(frac, thousands) {
			return "", false
		}
		digits, ok := ungroup(intPart, thousands)
		if !ok {
			return "", false
		}
		return digits + "." + frac, true
	case lastDot >= 0:
		return splitSeparator(s, ".")
	case lastComma >= 0:
		return splitSeparator(s, ",")
	default:
		return s, true
	}
}

// splitSeparator resuelve un número con un solo tipo de separador.
func splitSeparator(s, sep string) (string, bool) {
	parts := strings.Split(s, sep)
	if len(parts) == 2 && len(parts[1]) != 3 {
		return parts[0] + "." + parts[1], true
	}
	return ungroup(s, sep)
}

// ungroup quita separadores de miles exigiendo grupos de tres dígitos.
func ungroup(s, sep string) (string, bool) {
	parts := strings.Split(s, sep)
	if len(parts) == 1 {
		return s, true
	}
	head := strings.TrimPrefix(parts[0], "-")
	if head == "" || len(head) > 3 {
		return "", false
	}
	for _, g := range parts[1:] {
		if len(g) != 3 {
			return "", false
		}
	}
	return strings.Join(parts, ""), true
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
	"2/1/2006",
}

// ParseDate interpreta FECHA_PAGO: vacío = sin fecha; número = serial de Excel; texto en formatos comunes.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return nil, fmt.Errorf("FECHA_PAGO inválida %q", s)
		}
		return &t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("FECHA_PAGO inválida %q", s)
}

package excel

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/internal/domain/repository"
)

var _ repository.PetitionRepository = (*PetitionRepo)(nil)

// DefaultPetitionSheet hoja de la bitácora de PQRS.
const DefaultPetitionSheet = "PQRS"

const petitionTimeLayout = "2006-01-02 15:04:05"

// PetitionColumns encabezados de la bitácora, en orden.
var PetitionColumns = []string{
	"ID", "FechaHora", "Radicado", "Documento", "Nombre", "Curso",
	"Email", "Telefono", "Tipo", "Asunto", "Detalle", "Estado",
}

// PetitionRepo bitácora de PQRS en un libro .xlsx.
// Cada Append lee el libro existente, agrega una fila y lo reemplaza de forma atómica
// (archivo temporal + rename). El mutex serializa los escritores de este proceso.
type PetitionRepo struct {
	path string
	mu   sync.Mutex
}

// NewPetitionRepository construye el adaptador sobre la ruta indicada (se crea si no existe).
func NewPetitionRepository(path string) *PetitionRepo {
	return &PetitionRepo{path: path}
}

// Append agrega la PQRS al final de la hoja sin tocar las filas anteriores.
func (r *PetitionRepo) Append(_ context.Context, p *entity.Petition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.open()
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(DefaultPetitionSheet)
	if err != nil {
		return fmt.Errorf("%w: leer bitácora: %v", domain.ErrSourceUnavailable, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	values := []interface{}{
		p.ID, p.FechaHora.Format(petitionTimeLayout), p.Radicado, p.Documento, p.Nombre, p.Curso,
		p.Email, p.Telefono, string(p.Tipo), p.Asunto, p.Detalle, p.Estado,
	}
	if err := f.SetSheetRow(DefaultPetitionSheet, cell, &values); err != nil {
		return fmt.Errorf("%w: escribir fila: %v", domain.ErrSourceUnavailable, err)
	}
	return r.save(f)
}

// FindByTrackingCode devuelve las filas con ese radicado, en orden de registro.
func (r *PetitionRepo) FindByTrackingCode(_ context.Context, radicado string) ([]*entity.Petition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); errors.Is(err, os.ErrNotExist) {
		return []*entity.Petition{}, nil
	}
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("%w: abrir bitácora: %v", domain.ErrSourceUnavailable, err)
	}
	defer func() { _ = f.Close() }()
	if err := ensurePetitionSheet(f); err != nil {
		return nil, err
	}

	rows, err := f.GetRows(DefaultPetitionSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: leer bitácora: %v", domain.ErrSourceUnavailable, err)
	}
	if len(rows) == 0 {
		return []*entity.Petition{}, nil
	}
	idx, err := headerIndex(rows[0], upper(PetitionColumns))
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Petition, 0)
	for i, cells := range rows[1:] {
		get := func(col string) string {
			j := idx[strings.ToUpper(col)]
			if j >= len(cells) {
				return ""
			}
			return cells[j]
		}
		if !strings.EqualFold(get("Radicado"), radicado) {
			continue
		}
		at, err := time.Parse(petitionTimeLayout, get("FechaHora"))
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: FechaHora inválida %q", domain.ErrSourceUnavailable, i+2, get("FechaHora"))
		}
		out = append(out, &entity.Petition{
			ID:        get("ID"),
			FechaHora: at,
			Radicado:  get("Radicado"),
			Documento: get("Documento"),
			Nombre:    get("Nombre"),
			Curso:     get("Curso"),
			Email:     get("Email"),
			Telefono:  get("Telefono"),
			Tipo:      entity.PetitionCategory(get("Tipo")),
			Asunto:    get("Asunto"),
			Detalle:   get("Detalle"),
			Estado:    get("Estado"),
		})
	}
	return out, nil
}

// open abre la bitácora o crea un libro nuevo con encabezados.
func (r *PetitionRepo) open() (*excelize.File, error) {
	if _, err := os.Stat(r.path); err == nil {
		f, err := excelize.OpenFile(r.path)
		if err != nil {
			return nil, fmt.Errorf("%w: abrir bitácora: %v", domain.ErrSourceUnavailable, err)
		}
		if err := ensurePetitionSheet(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		return f, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", DefaultPetitionSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: crear hoja: %v", domain.ErrSourceUnavailable, err)
	}
	header := make([]interface{}, len(PetitionColumns))
	for i, h := range PetitionColumns {
		header[i] = h
	}
	if err := f.SetSheetRow(DefaultPetitionSheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: escribir encabezados: %v", domain.ErrSourceUnavailable, err)
	}
	return f, nil
}

// ensurePetitionSheet acepta también la bitácora heredada: primera hoja con los
// encabezados sin la columna ID. La renombra, inserta la columna y numera las filas
// como "legado-<n>". El cambio queda en memoria hasta el siguiente save.
func ensurePetitionSheet(f *excelize.File) error {
	if idx, _ := f.GetSheetIndex(DefaultPetitionSheet); idx != -1 {
		return nil
	}
	legacy := f.GetSheetName(0)
	rows, err := f.GetRows(legacy)
	if err != nil || len(rows) == 0 || !isLegacyHeader(rows[0]) {
		return fmt.Errorf("%w: la bitácora no tiene la hoja %s", domain.ErrSourceUnavailable, DefaultPetitionSheet)
	}

	if err := f.SetSheetName(legacy, DefaultPetitionSheet); err != nil {
		return fmt.Errorf("%w: migrar bitácora: %v", domain.ErrSourceUnavailable, err)
	}
	if err := f.InsertCols(DefaultPetitionSheet, "A", 1); err != nil {
		return fmt.Errorf("%w: migrar bitácora: %v", domain.ErrSourceUnavailable, err)
	}
	if err := f.SetCellValue(DefaultPetitionSheet, "A1", PetitionColumns[0]); err != nil {
		return fmt.Errorf("%w: migrar bitácora: %v", domain.ErrSourceUnavailable, err)
	}
	for n := 1; n < len(rows); n++ {
		cell, _ := excelize.CoordinatesToCellName(1, n+1)
		if err := f.SetCellValue(DefaultPetitionSheet, cell, fmt.Sprintf("legado-%d", n)); err != nil {
			return fmt.Errorf("%w: migrar bitácora: %v", domain.ErrSourceUnavailable, err)
		}
	}
	return nil
}

func isLegacyHeader(header []string) bool {
	want := PetitionColumns[1:]
	if len(header) < len(want) {
		return false
	}
	for i, col := range want {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return false
		}
	}
	return true
}

func (r *PetitionRepo) save(f *excelize.File) error {
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
		}
	}
	tmp := r.path + ".tmp.xlsx"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("%w: guardar bitácora: %v", domain.ErrSourceUnavailable, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: reemplazar bitácora: %v", domain.ErrSourceUnavailable, err)
	}
	return nil
}

func upper(cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = strings.ToUpper(c)
	}
	return out
}

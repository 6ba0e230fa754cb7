// seed_cartera carga cartera_estudiantes a partir de la hoja de cartera (.xlsx)
// o de una exportación CSV en Latin-1.
//
// Uso:
//
//	go run ./cmd/seed_cartera [base_cartera_colegio.xlsx|cartera.csv] [salida.sql]
//	go run ./cmd/seed_cartera -apply [base_cartera_colegio.xlsx|cartera.csv]
//
// Sin -apply escribe un script SQL (por defecto
// internal/infrastructure/postgres/migrations/002_seed_cartera.sql).
// Con -apply reemplaza la tabla en la base configurada (DATABASE_URL o DB_*) en una sola transacción.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/internal/infrastructure/excel"
	"github.com/jhoicas/colegio-cartera/internal/infrastructure/postgres"
	"github.com/jhoicas/colegio-cartera/pkg/config"
)

func main() {
	args := os.Args[1:]
	apply := len(args) > 0 && args[0] == "-apply"
	if apply {
		args = args[1:]
	}

	inPath := "base_cartera_colegio.xlsx"
	if len(args) > 0 {
		inPath = args[0]
	}

	rows, err := readLedger(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer cartera: %v\n", err)
		os.Exit(1)
	}

	if apply {
		n, err := applyToDB(rows)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cargar en PostgreSQL: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cargadas %d filas de cartera en cartera_estudiantes\n", n)
		return
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_cartera.sql")
	if len(args) > 1 {
		outPath = args[1]
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if err := writeSeed(w, filepath.Base(inPath), rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d filas de cartera\n", outPath, len(rows))
}

func applyToDB(rows []*entity.LedgerRow) (int, error) {
	cfg, err := config.Load()
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return 0, err
	}
	defer pool.Close()

	var n int
	err = postgres.NewTxRunner(pool).Run(ctx, func(q postgres.Querier) error {
		var err error
		n, err = postgres.NewLedgerRepository(q).ReplaceAll(ctx, rows)
		return err
	})
	return n, err
}

func readLedger(path string) ([]*entity.LedgerRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return excel.NewLedgerRepository(path, "").ReadAll(context.Background())
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readCSV(f)
	default:
		return nil, fmt.Errorf("extensión no soportada %q (xlsx|csv)", filepath.Ext(path))
	}
}

// readCSV acepta UTF-8 o Latin-1 (exportación típica de Excel en Windows) y separador , o ;.
func readCSV(r io.Reader) ([]*entity.LedgerRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if firstLine, _, _ := bytes.Cut(raw, []byte("\n")); bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		cr.Comma = ';'
	}
	table, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return excel.ParseLedgerRows(table)
}

func writeSeed(w io.Writer, source string, rows []*entity.LedgerRow) error {
	fmt.Fprintf(w, "-- Cartera estudiantil generada desde %s\n\n", source)
	fmt.Fprintln(w, "BEGIN;")
	fmt.Fprintln(w, "TRUNCATE cartera_estudiantes RESTART IDENTITY;")
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "COMMIT;")
		return err
	}
	fmt.Fprintln(w, "INSERT INTO cartera_estudiantes")
	fmt.Fprintln(w, "  (documento, nombre_completo, curso, mes, total_mensual, estado_pago, fecha_pago, medio_pago)")
	fmt.Fprintln(w, "VALUES")
	for i, r := range rows {
		fecha := "NULL"
		if r.FechaPago != nil {
			fecha = "'" + r.FechaPago.Format("2006-01-02") + "'"
		}
		medio := "NULL"
		if r.MedioPago != "" {
			medio = quote(r.MedioPago)
		}
		sep := ","
		if i == len(rows)-1 {
			sep = ";"
		}
		fmt.Fprintf(w, "  (%s, %s, %s, %s, %s, '%s', %s, %s)%s\n",
			quote(r.Documento), quote(r.NombreCompleto), quote(r.Curso), quote(r.Mes),
			r.TotalMensual.String(), r.EstadoPago, fecha, medio, sep)
	}
	_, err := fmt.Fprintln(w, "COMMIT;")
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

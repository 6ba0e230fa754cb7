package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/colegio-cartera/internal/domain/cartera"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre la tabla cartera_estudiantes.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// FindByDocument devuelve los periodos del documento en el orden de carga.
func (r *LedgerRepo) FindByDocument(ctx context.Context, documento string) ([]*entity.LedgerRow, error) {
	query := `
		SELECT documento, nombre_completo, curso, mes, total_mensual, estado_pago, fecha_pago, medio_pago
		FROM cartera_estudiantes WHERE btrim(documento) = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, cartera.NormalizeDocument(documento))
	if err != nil {
		return nil, unavailable("consultar cartera", err)
	}
	defer rows.Close()

	out := make([]*entity.LedgerRow, 0)
	for rows.Next() {
		var (
			row       entity.LedgerRow
			amount    decimal.Decimal
			status    string
			fechaPago *time.Time
			medioPago *string
		)
		if err := rows.Scan(&row.Documento, &row.NombreCompleto, &row.Curso, &row.Mes,
			&amount, &status, &fechaPago, &medioPago); err != nil {
			return nil, unavailable("leer fila de cartera", err)
		}
		st, err := cartera.ParseStatus(status)
		if err != nil {
			return nil, unavailable("estado de pago", err)
		}
		row.Documento = cartera.NormalizeDocument(row.Documento)
		row.TotalMensual = amount
		row.EstadoPago = st
		row.FechaPago = fechaPago
		if medioPago != nil {
			row.MedioPago = *medioPago
		}
		out = append(out, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterar cartera", err)
	}
	return out, nil
}

// ReplaceAll vacía la tabla y carga las filas en el orden recibido.
// Debe ejecutarse dentro de TxRunner.Run para que la carga sea atómica.
func (r *LedgerRepo) ReplaceAll(ctx context.Context, rows []*entity.LedgerRow) (int, error) {
	if _, err := r.q.Exec(ctx, `TRUNCATE cartera_estudiantes RESTART IDENTITY`); err != nil {
		return 0, unavailable("vaciar cartera", err)
	}
	query := `
		INSERT INTO cartera_estudiantes
			(documento, nombre_completo, curso, mes, total_mensual, estado_pago, fecha_pago, medio_pago)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, row := range rows {
		var medio *string
		if row.MedioPago != "" {
			medio = &row.MedioPago
		}
		_, err := r.q.Exec(ctx, query,
			cartera.NormalizeDocument(row.Documento), row.NombreCompleto, row.Curso, row.Mes,
			row.TotalMensual, string(row.EstadoPago), row.FechaPago, medio,
		)
		if err != nil {
			return i, unavailable(fmt.Sprintf("insertar fila %d", i+1), err)
		}
	}
	return len(rows), nil
}

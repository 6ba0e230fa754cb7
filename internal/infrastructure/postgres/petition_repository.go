package postgres

import (
	"context"

	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/internal/domain/repository"
)

var _ repository.PetitionRepository = (*PetitionRepo)(nil)

// PetitionRepo bitácora de PQRS en la tabla pqrs (solo INSERT).
type PetitionRepo struct {
	q Querier
}

// NewPetitionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPetitionRepository(q Querier) *PetitionRepo {
	return &PetitionRepo{q: q}
}

// Append inserta la radicación.
func (r *PetitionRepo) Append(ctx context.Context, p *entity.Petition) error {
	query := `
		INSERT INTO pqrs (id, fecha_hora, radicado, documento, nombre, curso, email, telefono, tipo, asunto, detalle, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.FechaHora, p.Radicado, p.Documento, p.Nombre, p.Curso,
		p.Email, p.Telefono, string(p.Tipo), p.Asunto, p.Detalle, p.Estado,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return unavailable("insertar pqrs", err)
	}
	return nil
}

// FindByTrackingCode lista las radicaciones con ese número, de la más antigua a la más reciente.
func (r *PetitionRepo) FindByTrackingCode(ctx context.Context, radicado string) ([]*entity.Petition, error) {
	query := `
		SELECT id, fecha_hora, radicado, documento, nombre, curso, email, telefono, tipo, asunto, detalle, estado
		FROM pqrs WHERE radicado = $1 ORDER BY fecha_hora, id`
	rows, err := r.q.Query(ctx, query, radicado)
	if err != nil {
		return nil, unavailable("consultar pqrs", err)
	}
	defer rows.Close()

	out := make([]*entity.Petition, 0)
	for rows.Next() {
		var p entity.Petition
		var tipo string
		if err := rows.Scan(&p.ID, &p.FechaHora, &p.Radicado, &p.Documento, &p.Nombre, &p.Curso,
			&p.Email, &p.Telefono, &tipo, &p.Asunto, &p.Detalle, &p.Estado); err != nil {
			return nil, unavailable("leer pqrs", err)
		}
		p.Tipo = entity.PetitionCategory(tipo)
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterar pqrs", err)
	}
	return out, nil
}

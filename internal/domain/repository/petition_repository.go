package repository

import (
	"context"

	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

// PetitionRepository bitácora de PQRS de solo agregado.
type PetitionRepository interface {
	// Append agrega el registro sin sobrescribir los anteriores.
	Append(ctx context.Context, p *entity.Petition) error
	// FindByTrackingCode devuelve todas las radicaciones con ese número (puede haber varias el mismo día).
	FindByTrackingCode(ctx context.Context, radicado string) ([]*entity.Petition, error)
}

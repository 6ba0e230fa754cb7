// Package billing contiene los casos de uso de cartera estudiantil:
// consulta de estado, expedición y verificación del paz y salvo.
package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/cartera"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/internal/domain/repository"
)

// Resolver resuelve las filas de cartera de un estudiante.
type Resolver struct {
	ledger repository.LedgerRepository
}

// NewResolver construye el resolver sobre la fuente de cartera.
func NewResolver(ledger repository.LedgerRepository) *Resolver {
	return &Resolver{ledger: ledger}
}

// Lookup devuelve las filas del documento (vacío si no hay coincidencias).
// El llamador debe rechazar documentos en blanco antes de invocar.
// Cualquier fallo de la fuente se devuelve envuelto en domain.ErrSourceUnavailable
// y no se entrega ningún resultado parcial.
func (r *Resolver) Lookup(ctx context.Context, documento string) ([]*entity.LedgerRow, error) {
	doc := cartera.NormalizeDocument(documento)
	if doc == "" {
		return []*entity.LedgerRow{}, nil
	}
	rows, err := r.ledger.FindByDocument(ctx, doc)
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	// La fuente puede devolver coincidencias laxas; se filtra con la comparación normalizada.
	return cartera.FilterByDocument(rows, doc), nil
}

package repository

import (
	"context"

	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

// LedgerRepository fuente tabular de cartera (solo lectura).
// FindByDocument devuelve un slice vacío si el documento no tiene filas y
// un error que envuelve domain.ErrSourceUnavailable si la fuente no se puede leer.
type LedgerRepository interface {
	FindByDocument(ctx context.Context, documento string) ([]*entity.LedgerRow, error)
}

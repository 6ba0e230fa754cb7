package repository

import (
	"context"

	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

// ChatSessionRepository almacena las sesiones del asistente por ID.
// Get devuelve domain.ErrSessionNotFound si la sesión no existe o expiró.
type ChatSessionRepository interface {
	Get(ctx context.Context, id string) (*entity.ChatSession, error)
	Save(ctx context.Context, s *entity.ChatSession) error
	Delete(ctx context.Context, id string) error
}

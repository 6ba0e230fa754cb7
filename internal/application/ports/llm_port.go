package ports

import (
	"context"

	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

// ChatCompleter puerto de salida hacia el servicio de completado de texto.
// Cualquier adaptador (OpenAI, Anthropic, Gemini, mock) implementa esta interfaz.
//
// Recibe la instrucción de sistema y el historial ordenado (el último mensaje
// es la pregunta del usuario) y devuelve una única respuesta. Si el proveedor
// responde con error, el adaptador devuelve *domain.ServiceError con el estado
// y el mensaje tal como llegaron.
type ChatCompleter interface {
	Complete(ctx context.Context, system string, history []entity.ChatMessage) (string, error)
	Name() string
}

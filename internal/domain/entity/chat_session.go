package entity

import "time"

// Roles de los mensajes de conversación.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage un turno de la conversación.
type ChatMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// ChatSession historial explícito de una conversación con el asistente.
// Se crea al iniciar la sesión y se vacía con un reinicio explícito.
type ChatSession struct {
	ID        string        `json:"id"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// WithTurn devuelve una copia de la sesión con el par pregunta/respuesta agregado.
// La sesión original no se modifica.
func (s *ChatSession) WithTurn(user, assistant ChatMessage) *ChatSession {
	msgs := make([]ChatMessage, 0, len(s.Messages)+2)
	msgs = append(msgs, s.Messages...)
	msgs = append(msgs, user, assistant)
	return &ChatSession{
		ID:        s.ID,
		Messages:  msgs,
		CreatedAt: s.CreatedAt,
		UpdatedAt: assistant.At,
	}
}

// Reset vacía el historial conservando la identidad de la sesión.
func (s *ChatSession) Reset(now time.Time) {
	s.Messages = []ChatMessage{}
	s.UpdatedAt = now
}

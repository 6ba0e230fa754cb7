package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/colegio-cartera/internal/application/ports"
	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/internal/domain/repository"
)

// DefaultSystemPrompt instrucción de sistema del asistente académico.
const DefaultSystemPrompt = "Eres un asistente académico del Colegio Abogados Col. " +
	"Responde con amabilidad sobre pagos, certificados, trámites y horarios."

// ChatConfig parámetros del asistente.
type ChatConfig struct {
	SystemPrompt string
	Timeout      time.Duration // por turno; 0 = 30 s
	MaxHistory   int           // mensajes enviados al modelo; 0 = todo el historial
}

// ChatUseCase orquesta los turnos de conversación sobre sesiones explícitas.
// Un turno fallido no modifica la sesión guardada, de modo que el usuario puede reintentar.
type ChatUseCase struct {
	llm      ports.ChatCompleter
	sessions repository.ChatSessionRepository
	cfg      ChatConfig
	now      func() time.Time
	log      zerolog.Logger
}

// NewChatUseCase construye el caso de uso inyectando el puerto ChatCompleter.
func NewChatUseCase(
	llm ports.ChatCompleter,
	sessions repository.ChatSessionRepository,
	cfg ChatConfig,
	now func() time.Time,
	log zerolog.Logger,
) *ChatUseCase {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if now == nil {
		now = time.Now
	}
	return &ChatUseCase{llm: llm, sessions: sessions, cfg: cfg, now: now, log: log}
}

// Provider nombre del proveedor configurado.
func (uc *ChatUseCase) Provider() string { return uc.llm.Name() }

// StartSession crea una sesión vacía.
func (uc *ChatUseCase) StartSession(ctx context.Context) (*entity.ChatSession, error) {
	now := uc.now()
	s := &entity.ChatSession{
		ID:        uuid.New().String(),
		Messages:  []entity.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("chat: guardar sesión: %w", err)
	}
	return s, nil
}

// SendMessage ejecuta un turno: envía historial + mensaje al modelo y, solo si responde,
// guarda la sesión con el nuevo par de mensajes.
//
// Retorna domain.ErrInvalidInput si el mensaje está vacío, domain.ErrSessionNotFound si
// la sesión no existe, y *domain.ServiceError si el proveedor respondió con error.
func (uc *ChatUseCase) SendMessage(ctx context.Context, sessionID, text string) (*entity.ChatSession, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", fmt.Errorf("%w: el mensaje es obligatorio", domain.ErrInvalidInput)
	}
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	userMsg := entity.ChatMessage{Role: entity.ChatRoleUser, Content: text, At: uc.now()}
	history := make([]entity.ChatMessage, 0, len(session.Messages)+1)
	history = append(history, session.Messages...)
	history = append(history, userMsg)
	if uc.cfg.MaxHistory > 0 && len(history) > uc.cfg.MaxHistory {
		history = history[len(history)-uc.cfg.MaxHistory:]
	}

	// el timeout cubre solo la llamada al modelo; el guardado usa el contexto del request
	turnCtx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout)
	defer cancel()

	reply, err := uc.llm.Complete(turnCtx, uc.cfg.SystemPrompt, history)
	if err != nil {
		uc.log.Warn().Err(err).Str("provider", uc.llm.Name()).Str("session", sessionID).Msg("chat: turno fallido")
		return session, "", err
	}

	next := session.WithTurn(userMsg, entity.ChatMessage{
		Role:    entity.ChatRoleAssistant,
		Content: reply,
		At:      uc.now(),
	})
	if err := uc.sessions.Save(ctx, next); err != nil {
		return session, "", fmt.Errorf("chat: guardar sesión: %w", err)
	}
	return next, reply, nil
}

// History devuelve la sesión tal como está guardada.
func (uc *ChatUseCase) History(ctx context.Context, sessionID string) (*entity.ChatSession, error) {
	return uc.sessions.Get(ctx, sessionID)
}

// Close elimina la sesión; el token deja de servir aunque no haya expirado.
func (uc *ChatUseCase) Close(ctx context.Context, sessionID string) error {
	if _, err := uc.sessions.Get(ctx, sessionID); err != nil {
		return err
	}
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("chat: eliminar sesión: %w", err)
	}
	return nil
}

// Reset vacía el historial de la sesión sin invalidar su identificador.
func (uc *ChatUseCase) Reset(ctx context.Context, sessionID string) (*entity.ChatSession, error) {
	s, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.Reset(uc.now())
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("chat: guardar sesión: %w", err)
	}
	return s, nil
}

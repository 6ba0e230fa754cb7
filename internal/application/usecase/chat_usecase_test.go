package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/colegio-cartera/internal/application/usecase"
	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/internal/infrastructure/session"
)

// scriptedLLM responde en orden; un error en la lista se devuelve como falla del turno.
type scriptedLLM struct {
	replies  []interface{}
	calls    int
	system   string
	received [][]entity.ChatMessage
}

func (s *scriptedLLM) Name() string { return "fake" }

func (s *scriptedLLM) Complete(_ context.Context, system string, history []entity.ChatMessage) (string, error) {
	s.system = system
	s.received = append(s.received, append([]entity.ChatMessage(nil), history...))
	r := s.replies[s.calls]
	s.calls++
	if err, ok := r.(error); ok {
		return "", err
	}
	return r.(string), nil
}

func newChat(llm *scriptedLLM, cfg usecase.ChatConfig) (*usecase.ChatUseCase, *session.MemoryStore) {
	store := session.NewMemoryStore(0, nil)
	now := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	return usecase.NewChatUseCase(llm, store, cfg, func() time.Time { return now }, zerolog.Nop()), store
}

func TestChat_HistorialAcumulado(t *testing.T) {
	llm := &scriptedLLM{replies: []interface{}{"Hola, ¿en qué te ayudo?", "La pensión vence el día 5."}}
	uc, _ := newChat(llm, usecase.ChatConfig{})
	ctx := context.Background()

	s, err := uc.StartSession(ctx)
	require.NoError(t, err)

	_, reply, err := uc.SendMessage(ctx, s.ID, "Hola")
	require.NoError(t, err)
	assert.Equal(t, "Hola, ¿en qué te ayudo?", reply)

	next, _, err := uc.SendMessage(ctx, s.ID, "¿Cuándo vence la pensión?")
	require.NoError(t, err)
	require.Len(t, next.Messages, 4)
	assert.Equal(t, entity.ChatRoleAssistant, next.Messages[3].Role)

	assert.Equal(t, usecase.DefaultSystemPrompt, llm.system)
	require.Len(t, llm.received[1], 3, "el segundo turno envía el historial previo más el mensaje nuevo")
	assert.Equal(t, "Hola", llm.received[1][0].Content)
}

func TestChat_TurnoFallidoNoModificaLaSesion(t *testing.T) {
	svcErr := &domain.ServiceError{Provider: "fake", Status: 429, Message: "Rate limit"}
	llm := &scriptedLLM{replies: []interface{}{"primera", svcErr, "reintento"}}
	uc, _ := newChat(llm, usecase.ChatConfig{})
	ctx := context.Background()

	s, err := uc.StartSession(ctx)
	require.NoError(t, err)
	_, _, err = uc.SendMessage(ctx, s.ID, "uno")
	require.NoError(t, err)

	_, _, err = uc.SendMessage(ctx, s.ID, "dos")
	var se *domain.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Rate limit", se.Message)

	h, err := uc.History(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, h.Messages, 2)

	_, _, err = uc.SendMessage(ctx, s.ID, "dos")
	require.NoError(t, err)
	h, err = uc.History(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, h.Messages, 4)
}

func TestChat_MaxHistory(t *testing.T) {
	llm := &scriptedLLM{replies: []interface{}{"a", "b", "c"}}
	uc, _ := newChat(llm, usecase.ChatConfig{MaxHistory: 3, SystemPrompt: "custom"})
	ctx := context.Background()
	s, err := uc.StartSession(ctx)
	require.NoError(t, err)

	for _, m := range []string{"1", "2", "3"} {
		_, _, err = uc.SendMessage(ctx, s.ID, m)
		require.NoError(t, err)
	}
	assert.Len(t, llm.received[2], 3)
	assert.Equal(t, "3", llm.received[2][2].Content)
	assert.Equal(t, "custom", llm.system)
}

func TestChat_ValidacionesYReset(t *testing.T) {
	llm := &scriptedLLM{replies: []interface{}{"ok"}}
	uc, _ := newChat(llm, usecase.ChatConfig{})
	ctx := context.Background()

	_, _, err := uc.SendMessage(ctx, "no-existe", "hola")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	s, err := uc.StartSession(ctx)
	require.NoError(t, err)
	_, _, err = uc.SendMessage(ctx, s.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, llm.calls)

	_, _, err = uc.SendMessage(ctx, s.ID, "hola")
	require.NoError(t, err)
	r, err := uc.Reset(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, r.Messages)
	assert.Equal(t, s.ID, r.ID)
}

func TestChat_CloseEliminaLaSesion(t *testing.T) {
	llm := &scriptedLLM{replies: []interface{}{"ok"}}
	uc, store := newChat(llm, usecase.ChatConfig{})
	ctx := context.Background()

	s, err := uc.StartSession(ctx)
	require.NoError(t, err)
	_, _, err = uc.SendMessage(ctx, s.ID, "hola")
	require.NoError(t, err)

	require.NoError(t, uc.Close(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = uc.History(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.ErrorIs(t, uc.Close(ctx, s.ID), domain.ErrSessionNotFound)
}

// slowLLM responde cuando vence el contexto del turno, como un proveedor que agota el tiempo justo al final.
type slowLLM struct{}

func (slowLLM) Name() string { return "lento" }

func (slowLLM) Complete(ctx context.Context, _ string, _ []entity.ChatMessage) (string, error) {
	<-ctx.Done()
	return "respuesta tardía", nil
}

// ctxStore rechaza escrituras con un contexto ya cancelado, como lo hace Redis.
type ctxStore struct {
	*session.MemoryStore
}

func (s ctxStore) Save(ctx context.Context, sess *entity.ChatSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.MemoryStore.Save(ctx, sess)
}

func TestChat_GuardadoNoUsaElTimeoutDelModelo(t *testing.T) {
	store := ctxStore{session.NewMemoryStore(0, nil)}
	uc := usecase.NewChatUseCase(slowLLM{}, store, usecase.ChatConfig{Timeout: 20 * time.Millisecond}, nil, zerolog.Nop())
	ctx := context.Background()

	s, err := uc.StartSession(ctx)
	require.NoError(t, err)

	next, reply, err := uc.SendMessage(ctx, s.ID, "hola")
	require.NoError(t, err)
	assert.Equal(t, "respuesta tardía", reply)
	require.Len(t, next.Messages, 2)

	h, err := uc.History(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, h.Messages, 2)
}

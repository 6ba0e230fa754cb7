package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/jhoicas/colegio-cartera/internal/application/ports"
	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

// Verificar en tiempo de compilación que GeminiService implementa ChatCompleter.
var _ ports.ChatCompleter = (*GeminiService)(nil)

const geminiDefaultModel = "gemini-2.0-flash"

// GeminiService adaptador de ChatCompleter sobre el SDK google.golang.org/genai.
// El cliente se crea en la primera llamada: sin API key el servidor arranca igual.
type GeminiService struct {
	apiKey  string
	model   string
	baseURL string

	once      sync.Once
	client    *genai.Client
	clientErr error
}

// NewGeminiService construye el adaptador. model vacío = gemini-2.0-flash.
func NewGeminiService(apiKey, model string) *GeminiService {
	if model == "" {
		model = geminiDefaultModel
	}
	return &GeminiService{apiKey: apiKey, model: model}
}

// WithBaseURL reemplaza el endpoint de la API.
func (s *GeminiService) WithBaseURL(u string) *GeminiService {
	s.baseURL = u
	return s
}

// Name nombre del proveedor.
func (s *GeminiService) Name() string { return "gemini" }

func (s *GeminiService) getClient(ctx context.Context) (*genai.Client, error) {
	s.once.Do(func() {
		cfg := &genai.ClientConfig{
			APIKey:  s.apiKey,
			Backend: genai.BackendGeminiAPI,
		}
		if s.baseURL != "" {
			cfg.HTTPOptions = genai.HTTPOptions{BaseURL: s.baseURL}
		}
		s.client, s.clientErr = genai.NewClient(ctx, cfg)
	})
	return s.client, s.clientErr
}

// Complete traduce el historial a contenidos genai (assistant → model).
func (s *GeminiService) Complete(ctx context.Context, system string, history []entity.ChatMessage) (string, error) {
	if s.apiKey == "" {
		return "", &domain.ServiceError{Provider: s.Name(), Message: "GEMINI_API_KEY no configurado"}
	}
	client, err := s.getClient(ctx)
	if err != nil {
		return "", &domain.ServiceError{Provider: s.Name(), Message: fmt.Sprintf("crear cliente: %v", err)}
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == entity.ChatRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, cfg)
	if err != nil {
		return "", geminiError(ctx, err)
	}
	text := resp.Text()
	if text == "" {
		return "", &domain.ServiceError{Provider: s.Name(), Message: "respuesta vacía"}
	}
	return text, nil
}

func geminiError(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &domain.ServiceError{Provider: "gemini", Status: apiErr.Code, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &domain.ServiceError{Provider: "gemini", Status: apiErrPtr.Code, Message: apiErrPtr.Message}
	}
	if ctx.Err() != nil {
		return &domain.ServiceError{Provider: "gemini", Message: "timeout o cancelación: " + ctx.Err().Error()}
	}
	return &domain.ServiceError{Provider: "gemini", Message: err.Error()}
}

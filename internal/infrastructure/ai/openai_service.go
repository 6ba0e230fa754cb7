package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/colegio-cartera/internal/application/ports"
	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

var _ ports.ChatCompleter = (*OpenAIService)(nil)

const (
	openAIChatURL      = "https://api.openai.com/v1/chat/completions"
	openAIDefaultModel = "gpt-4o-mini"
)

// OpenAIService adaptador de ChatCompleter sobre Chat Completions de OpenAI.
type OpenAIService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIService construye el adaptador. model vacío = gpt-4o-mini.
func NewOpenAIService(apiKey, model string) *OpenAIService {
	if model == "" {
		model = openAIDefaultModel
	}
	return &OpenAIService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    openAIChatURL,
		httpClient: &http.Client{Timeout: 45 * time.Second},
	}
}

// WithBaseURL reemplaza el endpoint.
func (s *OpenAIService) WithBaseURL(u string) *OpenAIService {
	s.baseURL = u
	return s
}

// Name nombre del proveedor.
func (s *OpenAIService) Name() string { return "openai" }

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model    string          `json:"model"`
	Messages []openAIMessage `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete antepone el prompt de sistema como primer mensaje y devuelve la primera opción.
func (s *OpenAIService) Complete(ctx context.Context, system string, history []entity.ChatMessage) (string, error) {
	if s.apiKey == "" {
		return "", &domain.ServiceError{Provider: s.Name(), Message: "OPENAI_API_KEY no configurado"}
	}

	msgs := make([]openAIMessage, 0, len(history)+1)
	if system != "" {
		msgs = append(msgs, openAIMessage{Role: "system", Content: system})
	}
	for _, m := range history {
		msgs = append(msgs, openAIMessage{Role: m.Role, Content: m.Content})
	}
	body, err := json.Marshal(openAIRequest{Model: s.model, Messages: msgs})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	rawBody, status, err := doRequest(ctx, s.httpClient, req, s.Name())
	if err != nil {
		return "", err
	}

	var resp openAIResponse
	jsonErr := json.Unmarshal(rawBody, &resp)
	if status != http.StatusOK {
		if jsonErr == nil && resp.Error != nil {
			return "", &domain.ServiceError{Provider: s.Name(), Status: status, Message: resp.Error.Message}
		}
		return "", &domain.ServiceError{Provider: s.Name(), Status: status, Message: strings.TrimSpace(string(rawBody))}
	}
	if jsonErr != nil {
		return "", &domain.ServiceError{Provider: s.Name(), Status: status, Message: "respuesta ilegible: " + jsonErr.Error()}
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &domain.ServiceError{Provider: s.Name(), Status: status, Message: "respuesta vacía"}
	}
	return resp.Choices[0].Message.Content, nil
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/colegio-cartera/internal/application/ports"
	"github.com/jhoicas/colegio-cartera/internal/domain"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
)

// Verificar en tiempo de compilación que AnthropicService implementa ChatCompleter.
var _ ports.ChatCompleter = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	anthropicMaxTokens   = 1024
)

// AnthropicService adaptador de ChatCompleter sobre la API REST de Anthropic (Claude).
type AnthropicService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// model suele ser "claude-3-5-haiku-20241022".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey:  apiKey,
		model:   model,
		baseURL: anthropicMessagesURL,
		httpClient: &http.Client{
			// timeout de red; el use case impone además su propio context.WithTimeout
			Timeout: 45 * time.Second,
		},
	}
}

// WithBaseURL reemplaza el endpoint (pruebas o proxies internos).
func (s *AnthropicService) WithBaseURL(u string) *AnthropicService {
	s.baseURL = u
	return s
}

// Name nombre del proveedor.
func (s *AnthropicService) Name() string { return "anthropic" }

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Complete envía el historial completo a Claude y devuelve el texto de la respuesta.
func (s *AnthropicService) Complete(ctx context.Context, system string, history []entity.ChatMessage) (string, error) {
	if s.apiKey == "" {
		return "", &domain.ServiceError{Provider: s.Name(), Message: "ANTHROPIC_API_KEY no configurado"}
	}

	msgs := make([]anthropicMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, anthropicMessage{Role: m.Role, Content: m.Content})
	}
	body, err := json.Marshal(anthropicRequest{
		Model:     s.model,
		MaxTokens: anthropicMaxTokens,
		System:    system,
		Messages:  msgs,
	})
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	rawBody, status, err := doRequest(ctx, s.httpClient, req, s.Name())
	if err != nil {
		return "", err
	}

	if status != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", &domain.ServiceError{Provider: s.Name(), Status: status, Message: errResp.Error.Message}
		}
		return "", &domain.ServiceError{Provider: s.Name(), Status: status, Message: strings.TrimSpace(string(rawBody))}
	}

	var resp anthropicResponse
	if err := json.Unmarshal(rawBody, &resp); err != nil {
		return "", &domain.ServiceError{Provider: s.Name(), Status: status, Message: "respuesta ilegible: " + err.Error()}
	}
	var sb strings.Builder
	for _, c := range resp.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	if sb.Len() == 0 {
		return "", &domain.ServiceError{Provider: s.Name(), Status: status, Message: "respuesta vacía"}
	}
	return sb.String(), nil
}

// doRequest ejecuta la petición y lee el cuerpo (máx. 256 KiB).
// Los fallos de red y de contexto se reportan como ServiceError.
func doRequest(ctx context.Context, c *http.Client, req *http.Request, provider string) ([]byte, int, error) {
	resp, err := c.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, &domain.ServiceError{Provider: provider, Message: "timeout o cancelación: " + ctx.Err().Error()}
		}
		return nil, 0, &domain.ServiceError{Provider: provider, Message: "llamada HTTP fallida: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, resp.StatusCode, &domain.ServiceError{Provider: provider, Status: resp.StatusCode, Message: "leer respuesta: " + err.Error()}
	}
	return raw, resp.StatusCode, nil
}

package dto

import "github.com/jhoicas/colegio-cartera/internal/domain/entity"

// ChatSessionResponse respuesta de POST /api/chat/sessions.
type ChatSessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // minutos
}

// ChatMessageRequest body para POST /api/chat/messages.
type ChatMessageRequest struct {
	Message string `json:"message"`
}

// ChatTurnResponse respuesta de un turno y del historial.
type ChatTurnResponse struct {
	SessionID string               `json:"session_id"`
	Reply     string               `json:"reply,omitempty"`
	History   []entity.ChatMessage `json:"history"`
}

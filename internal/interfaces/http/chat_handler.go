package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colegio-cartera/internal/application/dto"
	"github.com/jhoicas/colegio-cartera/internal/application/usecase"
	"github.com/jhoicas/colegio-cartera/internal/domain/entity"
	"github.com/jhoicas/colegio-cartera/pkg/jwt"
)

// ChatTokenConfig firma de los tokens de sesión.
type ChatTokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// ChatHandler endpoints del asistente virtual.
type ChatHandler struct {
	uc     *usecase.ChatUseCase
	tokens ChatTokenConfig
	now    func() time.Time
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase, tokens ChatTokenConfig, now func() time.Time) *ChatHandler {
	if now == nil {
		now = time.Now
	}
	return &ChatHandler{uc: uc, tokens: tokens, now: now}
}

// StartSession godoc
// @Summary      Iniciar conversación
// @Description  Crea una sesión vacía y devuelve el token que la identifica.
// @Tags         chat
// @Produce      json
// @Success      201  {object}  dto.ChatSessionResponse
// @Router       /api/chat/sessions [post]
func (h *ChatHandler) StartSession(c *fiber.Ctx) error {
	s, err := h.uc.StartSession(c.UserContext())
	if err != nil {
		return writeError(c, err, "")
	}
	token, err := jwt.GenerateSession(h.tokens.Secret, s.ID, h.tokens.Issuer, h.tokens.TTL, h.now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ChatSessionResponse{
		SessionID: s.ID,
		Token:     token,
		ExpiresIn: int(h.tokens.TTL / time.Minute),
	})
}

// SendMessage godoc
// @Summary      Enviar mensaje al asistente
// @Description  Si el proveedor falla se responde 502 con su estado y mensaje; la sesión no cambia.
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatMessageRequest  true  "mensaje"
// @Success      200  {object}  dto.ChatTurnResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ServiceErrorResponse
// @Router       /api/chat/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var in dto.ChatMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	s, reply, err := h.uc.SendMessage(c.UserContext(), GetSessionID(c), in.Message)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(turnResponse(s, reply))
}

// History godoc
// @Summary      Historial de la conversación
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ChatTurnResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/chat/messages [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	s, err := h.uc.History(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(turnResponse(s, ""))
}

// Reset godoc
// @Summary      Reiniciar conversación
// @Description  Vacía el historial; el token sigue siendo válido.
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ChatTurnResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/chat/messages [delete]
func (h *ChatHandler) Reset(c *fiber.Ctx) error {
	s, err := h.uc.Reset(c.UserContext(), GetSessionID(c))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(turnResponse(s, ""))
}

// Close godoc
// @Summary      Cerrar conversación
// @Description  Elimina la sesión; el token deja de ser útil.
// @Tags         chat
// @Security     Bearer
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/chat/sessions [delete]
func (h *ChatHandler) Close(c *fiber.Ctx) error {
	if err := h.uc.Close(c.UserContext(), GetSessionID(c)); err != nil {
		return writeError(c, err, "")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func turnResponse(s *entity.ChatSession, reply string) dto.ChatTurnResponse {
	history := s.Messages
	if history == nil {
		history = []entity.ChatMessage{}
	}
	return dto.ChatTurnResponse{SessionID: s.ID, Reply: reply, History: history}
}

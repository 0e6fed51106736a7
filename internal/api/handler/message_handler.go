package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkmarket/commission-market/internal/core/domain"
	"github.com/inkmarket/commission-market/internal/core/ports"
)

// MessageHandler handles direct messaging.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
	Content     string `json:"content"      validate:"required,max=2000"`
}

// Send handles POST /v1/messages. The sender is the caller; the send is
// gated by the sender's rate-limit window.
//
// @Summary      Send a direct message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      404   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /v1/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.service.Send(c.Request().Context(), ports.SendMessageInput{
		SenderID:    userID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msg)
}

// Conversation handles GET /v1/messages/:user_id — the caller's thread with
// the given user, oldest first.
//
// @Summary      Read a conversation
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path     string  true  "Other participant"
// @Success      200      {array}  domain.Message
// @Router       /v1/messages/{user_id} [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	messages, err := h.service.Conversation(c.Request().Context(), userID, c.Param("user_id"))
	if err != nil {
		return err
	}
	if messages == nil {
		messages = []*domain.Message{}
	}
	return c.JSON(http.StatusOK, messages)
}

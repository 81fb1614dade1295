package handler

import (
	"net/http"

	"eatwise/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const welcomeMessage = "Hi 👋 I’m EatWise. Upload a food label or ask me anything about your diet!"

// Upgrade HTTP connection to WebSocket
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleAssistantConnection godoc
// @Summary      Assistant chat WebSocket
// @Description  Opens a chat with the assistant.
// @Description  <br>
// @Description  **This is not a plain HTTP API.** Connect with `ws://` or `wss://`.
// @Description  Authentication uses the `token` query parameter instead of a header.
// @Description  Each text frame is a question; each reply frame is the JSON of assistant.Reply.
// @Tags         WebSocket
// @Param        token query string true "JWT from login"
// @Success      101 {string} string "Switching Protocols"
// @Failure      401 {object} handler.ErrorResponse "Missing or invalid token"
// @Router       /ws/assistant [get]
func (h *Handler) HandleAssistantConnection(c *gin.Context) {
	email := currentEmail(c)
	logger := logging.FromContext(c.Request.Context()).With(
		zap.String("email", email),
		zap.String("session_id", uuid.NewString()),
	)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	logger.Info("websocket connection established")

	if err := conn.WriteJSON(ReplyResponse{Reply: welcomeMessage}); err != nil {
		logger.Warn("send welcome", zap.Error(err))
		return
	}

	h.manageChatSession(c.Request.Context(), conn, email, logger)
}

package handler

import (
	"context"
	"errors"

	"eatwise/internal/assistant"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const maxChatMessageBytes = 16 << 10

// manageChatSession answers each text frame with one reply frame until the
// client goes away.
func (h *Handler) manageChatSession(ctx context.Context, conn *websocket.Conn, email string, logger *zap.Logger) {
	conn.SetReadLimit(maxChatMessageBytes)
	logger.Info("chat session started")

ReadLoop:
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("read message", zap.Error(err))
			}
			break ReadLoop
		}
		if messageType != websocket.TextMessage {
			logger.Debug("ignoring non-text frame", zap.Int("type", messageType))
			continue
		}

		reply, err := h.assistant.AskWithContext(ctx, email, string(message))
		var frame any = reply
		if err != nil {
			msg := "Failed to ask assistant"
			if errors.Is(err, assistant.ErrEmptyQuestion) {
				msg = "Message is required"
			} else {
				logger.Error("ask with context", zap.Error(err))
			}
			frame = ErrorResponse{Message: msg}
		}
		if err := conn.WriteJSON(frame); err != nil {
			logger.Warn("write reply", zap.Error(err))
			break ReadLoop
		}
	}
	logger.Info("chat session ended")
}

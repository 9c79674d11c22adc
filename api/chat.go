package api

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mvelkov/shopchat/domain"
)

// PostChat handles one chat exchange with the shop assistant.
// POST /v1/chat
func (h *Handler) PostChat(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ResponseEnvelope{
			Response: "Please send a valid message.",
			Success:  false,
			Error:    "invalid request body",
		})
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, domain.ResponseEnvelope{
			Response: "Please enter a message.",
			Success:  false,
			Error:    "empty message",
		})
	}

	history := sanitizeHistory(req.ChatHistory, h.config.MaxHistory)

	// A catalog read failure degrades to an empty product context rather
	// than failing the chat.
	records, err := h.store.ListProductRecords(ctx)
	if err != nil {
		log.Printf("WARN: failed to load product catalog: %v", err)
		records = nil
	}

	envelope := h.assistant.Respond(ctx, req.Message, history, records)

	if req.SessionID != "" {
		h.recordExchange(ctx, req.SessionID, req.Message, envelope)
	}

	return c.JSON(http.StatusOK, envelope)
}

// sanitizeHistory caps client-supplied history to the most recent limit
// entries and drops entries missing a role or content.
func sanitizeHistory(history []domain.ChatMessage, limit int) []domain.ChatMessage {
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	sanitized := make([]domain.ChatMessage, 0, len(history))
	for _, m := range history {
		if m.Role == "" || m.Content == "" {
			continue
		}
		sanitized = append(sanitized, domain.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return sanitized
}

// recordExchange appends the user message and the assistant reply to the
// session log. Log failures are non-fatal.
func (h *Handler) recordExchange(ctx context.Context, sessionID, userMessage string, envelope domain.ResponseEnvelope) {
	userMsg := &domain.Message{
		MessageID: "msg_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   userMessage,
		CreatedAt: time.Now(),
	}
	if err := h.store.CreateMessage(ctx, userMsg); err != nil {
		log.Printf("WARN: failed to record user message: %v", err)
	}

	replyMsg := &domain.Message{
		MessageID: "msg_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   envelope.Response,
		CreatedAt: time.Now(),
	}
	if err := h.store.CreateMessage(ctx, replyMsg); err != nil {
		log.Printf("WARN: failed to record assistant message: %v", err)
	}
}

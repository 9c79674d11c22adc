// Package api provides HTTP handlers for the shop assistant service.
package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvelkov/shopchat/config"
	"github.com/mvelkov/shopchat/domain"
	"github.com/mvelkov/shopchat/store"
)

// Assistant runs the chat pipeline.
type Assistant interface {
	Respond(ctx context.Context, userMessage string, history []domain.ChatMessage, products []map[string]interface{}) domain.ResponseEnvelope
}

// Handler handles HTTP requests.
type Handler struct {
	store     store.Store
	assistant Assistant
	config    *config.Config
}

// NewHandler creates a new handler.
func NewHandler(store store.Store, assistant Assistant, config *config.Config) *Handler {
	return &Handler{
		store:     store,
		assistant: assistant,
		config:    config,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/v1/chat", h.PostChat)

	e.GET("/v1/products", h.ListProducts)
	e.GET("/v1/products/:product_id", h.GetProduct)

	e.GET("/v1/sessions/:session_id/messages", h.GetSessionMessages)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

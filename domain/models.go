// Package domain defines the core domain models for the shop assistant.
package domain

import "time"

// Chat message roles. The set is closed.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single entry in a conversation. Order within a slice is
// conversation order.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProductSummary is the bounded, prompt-safe shape of a catalog record.
// Price and Stock are never negative.
type ProductSummary struct {
	Name        string
	Description string
	Price       float64
	Stock       int
}

// Product is a catalog row.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// ResponseEnvelope is the uniform result of one chat exchange. Every path
// through the assistant pipeline terminates in exactly one envelope; the
// Error field carries diagnostic detail and is never the user-facing text.
type ResponseEnvelope struct {
	Response   string `json:"response"`
	Success    bool   `json:"success"`
	Redirected bool   `json:"redirected,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Message is a stored entry in the session message log.
type Message struct {
	MessageID string    `json:"message_id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

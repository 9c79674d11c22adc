package domain

// ChatRequest is the inbound chat payload. ChatHistory is client-supplied
// and untrusted; the handler re-validates and caps it before it reaches the
// assistant.
type ChatRequest struct {
	Message     string        `json:"message"`
	ChatHistory []ChatMessage `json:"chat_history,omitempty"`
	SessionID   string        `json:"session_id,omitempty"`
}

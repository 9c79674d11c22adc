package assistant

import (
	"fmt"
	"strings"

	"github.com/mvelkov/shopchat/domain"
)

// systemInstruction is the behavioral contract handed to the remote model.
// It is a soft control: the model may ignore it, which is why the topic
// policy exists as a client-side backstop.
const systemInstruction = "You are a professional e-shop assistant. Your ONLY purpose is to help customers with:\n" +
	"- Product information and search\n" +
	"- Answering questions about available products\n" +
	"- Recommendations based on customer needs\n" +
	"- Help with orders, purchasing, shipping, returns, and billing\n\n" +
	"STRICT RULES:\n" +
	"- ONLY answer questions that are directly related to this e-shop and its products.\n" +
	"- If a user asks anything outside the shop (personal advice, general knowledge, politics, etc.),\n" +
	"  respond ONLY with a brief refusal and redirect them back to shop topics.\n" +
	"- Do NOT provide jokes, opinions unrelated to products, or external factual summaries.\n" +
	"- When refusing, use a short, polite redirection such as: 'I'm sorry, I can only help with questions related to this shop and its products...'\n"

// Assembler builds the ordered message list sent to the model.
type Assembler struct {
	maxHistory int
}

// NewAssembler creates an assembler keeping the last maxHistory entries of
// conversation history.
func NewAssembler(maxHistory int) *Assembler {
	return &Assembler{maxHistory: maxHistory}
}

// BuildMessages produces [system] + trimmed history + [user message].
// History longer than the window is truncated from the oldest end; relative
// order is preserved. The result is deterministic for identical inputs.
func (a *Assembler) BuildMessages(userMessage string, history []domain.ChatMessage, products []domain.ProductSummary) []domain.ChatMessage {
	if a.maxHistory > 0 && len(history) > a.maxHistory {
		history = history[len(history)-a.maxHistory:]
	}

	var sb strings.Builder
	sb.WriteString(systemInstruction)
	if len(products) > 0 {
		fmt.Fprintf(&sb, "\n\nAvailable products (first %d):\n", len(products))
		for _, p := range products {
			fmt.Fprintf(&sb, "- %s: %s (Price: €%.2f, Stock: %d)\n", p.Name, p.Description, p.Price, p.Stock)
		}
	}

	messages := make([]domain.ChatMessage, 0, len(history)+2)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: sb.String()})
	messages = append(messages, history...)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleUser, Content: userMessage})
	return messages
}

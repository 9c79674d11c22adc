package assistant

import (
	"context"
	"log"
	"strings"

	"github.com/mvelkov/shopchat/config"
	"github.com/mvelkov/shopchat/domain"
	"github.com/mvelkov/shopchat/inference"
)

// User-facing texts. Failures always surface as a short generic apology;
// internal detail goes into the envelope's error field only.
const (
	RedirectMessage = "I'm sorry, I can only help with questions related to this shop and its products. " +
		"Please ask about products, availability, prices, orders, shipping, returns, or similar shop topics."
	emptyResponseText = "Sorry, I couldn't generate a response. Please try again."
	failureText       = "Sorry, an error occurred. Please try again later."
)

// ModelInvoker performs the remote chat completion.
type ModelInvoker interface {
	Invoke(ctx context.Context, messages []domain.ChatMessage, maxTokens int, temperature float64) (*inference.ChatCompletionResponse, error)
}

// TopicChecker reports whether text is shop-related.
type TopicChecker interface {
	IsOnTopic(ctx context.Context, text string) bool
}

// Service runs the pipeline: sanitize products, assemble the prompt, invoke
// the model, apply the topic policy, and map every outcome to an envelope.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	invoker     ModelInvoker
	topics      TopicChecker
	sanitizer   *Sanitizer
	assembler   *Assembler
	maxTokens   int
	temperature float64
}

// New creates the assistant service. A nil topics checker disables the
// redirect policy, leaving the system instruction as the only scope control.
func New(cfg *config.Config, invoker ModelInvoker, topics TopicChecker) *Service {
	return &Service{
		invoker:     invoker,
		topics:      topics,
		sanitizer:   NewSanitizer(cfg.ProductLimit),
		assembler:   NewAssembler(cfg.MaxHistory),
		maxTokens:   cfg.LLMMaxTokens,
		temperature: cfg.LLMTemperature,
	}
}

// Respond handles one chat exchange. It never panics past this boundary:
// every path, including remote failure after retries, returns an envelope.
func (s *Service) Respond(ctx context.Context, userMessage string, history []domain.ChatMessage, products []map[string]interface{}) domain.ResponseEnvelope {
	summaries := s.sanitizer.Sanitize(products)
	messages := s.assembler.BuildMessages(userMessage, history, summaries)

	resp, err := s.invoker.Invoke(ctx, messages, s.maxTokens, s.temperature)
	if err != nil {
		log.Printf("ERROR: chat completion failed: %v", err)
		return domain.ResponseEnvelope{
			Response: failureText,
			Success:  false,
			Error:    err.Error(),
		}
	}

	text := extractText(resp)
	if text == "" {
		return domain.ResponseEnvelope{
			Response: emptyResponseText,
			Success:  false,
			Error:    "No response from API",
		}
	}

	if s.topics != nil {
		if !s.topics.IsOnTopic(ctx, userMessage) && !s.topics.IsOnTopic(ctx, text) {
			log.Printf("off-topic exchange detected; returning redirect message")
			return domain.ResponseEnvelope{
				Response:   RedirectMessage,
				Success:    true,
				Redirected: true,
			}
		}
	}

	return domain.ResponseEnvelope{Response: text, Success: true}
}

// extractText returns the first non-empty candidate text of the completion.
func extractText(resp *inference.ChatCompletionResponse) string {
	if resp == nil {
		return ""
	}
	for _, choice := range resp.Choices {
		if choice.Message == nil {
			continue
		}
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text
		}
	}
	return ""
}

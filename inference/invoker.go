package inference

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mvelkov/shopchat/domain"
)

// ErrClientUnavailable is returned when no API credential was configured.
// It is a configuration error, not a transient one, and is never retried.
var ErrClientUnavailable = errors.New("inference client is not initialized; missing API key")

// CompletionCaller is the remote call the invoker wraps.
type CompletionCaller interface {
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// Invoker wraps the completion call with bounded linear-backoff retry:
// attempt n sleeps delay*n before the next try. No jitter, no circuit
// breaker.
type Invoker struct {
	client  CompletionCaller
	model   string
	retries int
	delay   time.Duration
	sleep   func(time.Duration)
}

// NewInvoker creates an invoker for the given model. A nil client marks the
// remote endpoint as unconfigured; Invoke then fails immediately.
func NewInvoker(client CompletionCaller, model string, retries int, delay time.Duration) *Invoker {
	return &Invoker{
		client:  client,
		model:   model,
		retries: retries,
		delay:   delay,
		sleep:   time.Sleep,
	}
}

// SetSleep replaces the backoff wait. Tests use this to avoid wall-clock
// sleeps.
func (iv *Invoker) SetSleep(sleep func(time.Duration)) {
	iv.sleep = sleep
}

// Invoke performs the remote chat completion, retrying transient failures
// up to the configured count and returning the last error once retries are
// exhausted.
func (iv *Invoker) Invoke(ctx context.Context, messages []domain.ChatMessage, maxTokens int, temperature float64) (*ChatCompletionResponse, error) {
	if iv.client == nil {
		return nil, ErrClientUnavailable
	}

	req := &ChatCompletionRequest{
		Model:       iv.model,
		Messages:    messages,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	}

	var lastErr error
	for attempt := 1; attempt <= iv.retries+1; attempt++ {
		resp, err := iv.client.CreateChatCompletion(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		log.Printf("WARN: chat completion attempt %d failed: %v", attempt, err)
		if attempt <= iv.retries {
			iv.sleep(iv.delay * time.Duration(attempt))
		}
	}
	return nil, lastErr
}

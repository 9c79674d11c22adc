package inference

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mvelkov/shopchat/domain"
)

type fakeCaller struct {
	calls int
	// results are consumed per call; the last one repeats.
	errs []error
	resp *ChatCompletionResponse
}

func (f *fakeCaller) CreateChatCompletion(_ context.Context, _ *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	f.calls++
	idx := f.calls - 1
	if idx >= len(f.errs) {
		idx = len(f.errs) - 1
	}
	if err := f.errs[idx]; err != nil {
		return nil, err
	}
	return f.resp, nil
}

func testMessages() []domain.ChatMessage {
	return []domain.ChatMessage{{Role: domain.RoleUser, Content: "hello"}}
}

func TestInvokeClientUnavailable(t *testing.T) {
	iv := NewInvoker(nil, "m", 2, time.Millisecond)

	calls := 0
	iv.SetSleep(func(time.Duration) { calls++ })

	_, err := iv.Invoke(context.Background(), testMessages(), 500, 0.7)
	if !errors.Is(err, ErrClientUnavailable) {
		t.Fatalf("expected ErrClientUnavailable, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("configuration error must not retry, slept %d times", calls)
	}
}

func TestInvokeRetriesWithLinearBackoff(t *testing.T) {
	boom := errors.New("boom")
	caller := &fakeCaller{errs: []error{boom}}
	iv := NewInvoker(caller, "m", 2, 700*time.Millisecond)

	var delays []time.Duration
	iv.SetSleep(func(d time.Duration) { delays = append(delays, d) })

	_, err := iv.Invoke(context.Background(), testMessages(), 500, 0.7)
	if !errors.Is(err, boom) {
		t.Fatalf("expected last error, got %v", err)
	}
	if caller.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", caller.calls)
	}
	want := []time.Duration{700 * time.Millisecond, 1400 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("expected %d sleeps, got %v", len(want), delays)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Fatalf("sleep %d was %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestInvokeSucceedsAfterTransientFailure(t *testing.T) {
	resp := &ChatCompletionResponse{Model: "m"}
	caller := &fakeCaller{
		errs: []error{errors.New("transient"), nil},
		resp: resp,
	}
	iv := NewInvoker(caller, "m", 2, time.Millisecond)
	iv.SetSleep(func(time.Duration) {})

	got, err := iv.Invoke(context.Background(), testMessages(), 500, 0.7)
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != resp {
		t.Fatalf("unexpected response: %+v", got)
	}
	if caller.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", caller.calls)
	}
}

func TestInvokeSetsRequestParameters(t *testing.T) {
	var gotReq *ChatCompletionRequest
	caller := callerFunc(func(_ context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
		gotReq = req
		return &ChatCompletionResponse{}, nil
	})
	iv := NewInvoker(caller, "arch-router", 0, 0)

	if _, err := iv.Invoke(context.Background(), testMessages(), 500, 0.7); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if gotReq.Model != "arch-router" {
		t.Fatalf("model not set: %+v", gotReq)
	}
	if gotReq.MaxTokens == nil || *gotReq.MaxTokens != 500 {
		t.Fatalf("max_tokens not set: %+v", gotReq.MaxTokens)
	}
	if gotReq.Temperature == nil || *gotReq.Temperature != 0.7 {
		t.Fatalf("temperature not set: %+v", gotReq.Temperature)
	}
}

type callerFunc func(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)

func (f callerFunc) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	return f(ctx, req)
}

package assistant

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/mvelkov/shopchat/domain"
)

func TestBuildMessagesOrder(t *testing.T) {
	a := NewAssembler(12)
	history := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "hello"},
	}

	messages := a.BuildMessages("do you have keyboards?", history, nil)

	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].Role != domain.RoleSystem {
		t.Fatalf("first message role %q", messages[0].Role)
	}
	if !reflect.DeepEqual(messages[1:3], history) {
		t.Fatalf("history not preserved: %+v", messages[1:3])
	}
	last := messages[3]
	if last.Role != domain.RoleUser || last.Content != "do you have keyboards?" {
		t.Fatalf("unexpected final message: %+v", last)
	}
}

func TestBuildMessagesTrimsOldestHistory(t *testing.T) {
	a := NewAssembler(3)
	var history []domain.ChatMessage
	for i := 0; i < 10; i++ {
		history = append(history, domain.ChatMessage{Role: domain.RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	messages := a.BuildMessages("latest", history, nil)

	// system + 3 history + user
	if len(messages) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(messages))
	}
	for i, want := range []string{"m7", "m8", "m9"} {
		if messages[1+i].Content != want {
			t.Fatalf("history entry %d is %q, want %q", i, messages[1+i].Content, want)
		}
	}
}

func TestBuildMessagesProductBlock(t *testing.T) {
	a := NewAssembler(12)
	products := []domain.ProductSummary{
		{Name: "Mouse", Description: "wireless", Price: 24.9, Stock: 12},
		{Name: "Keyboard", Description: "", Price: 89, Stock: 0},
	}

	messages := a.BuildMessages("hi", nil, products)
	system := messages[0].Content

	if !strings.Contains(system, "Available products (first 2):") {
		t.Fatalf("missing or wrong product header:\n%s", system)
	}
	if !strings.Contains(system, "- Mouse: wireless (Price: €24.90, Stock: 12)") {
		t.Fatalf("missing mouse line:\n%s", system)
	}
	if !strings.Contains(system, "- Keyboard:  (Price: €89.00, Stock: 0)") {
		t.Fatalf("missing keyboard line:\n%s", system)
	}
	if got := strings.Count(system, "\n- "); got != 2 {
		t.Fatalf("expected 2 product lines, found %d", got)
	}
}

func TestBuildMessagesNoProducts(t *testing.T) {
	a := NewAssembler(12)
	messages := a.BuildMessages("hi", nil, nil)
	if strings.Contains(messages[0].Content, "Available products") {
		t.Fatalf("product block present without products:\n%s", messages[0].Content)
	}
}

func TestBuildMessagesDeterministic(t *testing.T) {
	a := NewAssembler(5)
	history := []domain.ChatMessage{{Role: domain.RoleUser, Content: "hi"}}
	products := []domain.ProductSummary{{Name: "Mouse", Price: 1.5, Stock: 3}}

	first := a.BuildMessages("msg", history, products)
	second := a.BuildMessages("msg", history, products)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("assembly is not deterministic:\n%+v\n%+v", first, second)
	}
}

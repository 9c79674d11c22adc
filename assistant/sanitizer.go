// Package assistant implements the message-assembly and response-policy
// pipeline between the chat endpoint and the remote model.
package assistant

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mvelkov/shopchat/domain"
)

// Sanitizer normalizes raw catalog records into bounded prompt-safe
// summaries.
type Sanitizer struct {
	limit int
}

// NewSanitizer creates a sanitizer capping output at limit records.
func NewSanitizer(limit int) *Sanitizer {
	return &Sanitizer{limit: limit}
}

// Sanitize keeps at most the first limit records, in input order, and
// coerces each field. A malformed record degrades to the all-defaults
// placeholder instead of aborting the batch: one bad catalog entry must
// not break the prompt.
func (s *Sanitizer) Sanitize(raw []map[string]interface{}) []domain.ProductSummary {
	if len(raw) == 0 {
		return nil
	}
	if s.limit > 0 && len(raw) > s.limit {
		raw = raw[:s.limit]
	}

	summaries := make([]domain.ProductSummary, 0, len(raw))
	for _, record := range raw {
		summaries = append(summaries, sanitizeRecord(record))
	}
	return summaries
}

func sanitizeRecord(record map[string]interface{}) domain.ProductSummary {
	summary := domain.ProductSummary{Name: "N/A"}
	if record == nil {
		return summary
	}

	// Name defaults only when the field is absent; a present empty string
	// is kept, matching the description handling.
	if v, ok := record["name"]; ok && v != nil {
		summary.Name = coerceString(v)
	}
	summary.Description = coerceString(record["description"])
	summary.Price = coerceFloat(record["price"])
	summary.Stock = coerceInt(record["stock"])
	return summary
}

func coerceString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}

func coerceFloat(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		f, _ = n.Float64()
	case string:
		f, _ = strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	if f < 0 {
		return 0
	}
	return f
}

func coerceInt(v interface{}) int {
	var i int
	switch n := v.(type) {
	case int:
		i = n
	case int64:
		i = int(n)
	case float64:
		i = int(n)
	case float32:
		i = int(n)
	case json.Number:
		v64, _ := n.Int64()
		i = int(v64)
	case string:
		i, _ = strconv.Atoi(strings.TrimSpace(n))
	}
	if i < 0 {
		return 0
	}
	return i
}

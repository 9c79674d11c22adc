// Package topic implements the shop-domain on-topic heuristic used to
// decide whether a chat exchange should be redirected.
package topic

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/open-policy-agent/opa/rego"
)

// storeKeywords is the closed vocabulary of shop-domain terms. A text
// containing any of them as a whole word counts as on-topic. Texts that are
// shop-related but use none of these words are misclassified; that false
// negative rate is an accepted limitation of the heuristic.
var storeKeywords = []string{
	"product", "price", "order", "purchase", "cart", "shipping", "return", "refund",
	"stock", "availability", "checkout", "payment", "invoice", "sku", "item", "buy",
	"size", "color", "brand", "search", "recommend", "recommendation", "category",
	"delivery", "warranty", "tracking", "billing", "catalog",
}

// Keywords are plain lowercase words, so joining them into the regex needs
// no escaping.
const moduleTemplate = "package shop_topic\n\n" +
	"default on_topic = false\n\n" +
	"on_topic {\n" +
	"\tregex.match(`\\b(%s)\\b`, lower(input.text))\n" +
	"}\n"

// Classifier decides whether text relates to the shop domain. The rego
// query is prepared once at construction and shared read-only across
// concurrent calls.
type Classifier struct {
	query rego.PreparedEvalQuery
}

// NewClassifier builds the keyword policy and prepares it for evaluation.
func NewClassifier(ctx context.Context) (*Classifier, error) {
	keywords := append([]string(nil), storeKeywords...)
	sort.Strings(keywords)
	module := fmt.Sprintf(moduleTemplate, strings.Join(keywords, "|"))

	r := rego.New(
		rego.Query("data.shop_topic.on_topic"),
		rego.Module("shop_topic.rego", module),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare topic policy: %w", err)
	}

	return &Classifier{query: query}, nil
}

// IsOnTopic reports whether text contains at least one shop-domain keyword,
// matched case-insensitively on word boundaries. Empty text is off-topic.
func (c *Classifier) IsOnTopic(ctx context.Context, text string) bool {
	if text == "" {
		return false
	}

	results, err := c.query.Eval(ctx, rego.EvalInput(map[string]interface{}{"text": text}))
	if err != nil {
		log.Printf("WARN: topic policy evaluation failed: %v", err)
		return false
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false
	}

	onTopic, ok := results[0].Expressions[0].Value.(bool)
	return ok && onTopic
}

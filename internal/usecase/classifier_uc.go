package usecase

import (
	"context"
	"fmt"
	"strings"

	"retail-ai-assistant/internal/domain/ports/adapter"
)

// IntentClassifier labels a message with one coarse intent category via a
// single LLM call. The returned label is the model output trimmed and
// lowercased, with no validation against the vocabulary: callers must treat
// unexpected labels as opaque. Errors are returned as-is; the default-to-other
// decision belongs to the orchestrator.
type IntentClassifier struct {
	gen adapter.TextGenerator
}

func NewIntentClassifier(gen adapter.TextGenerator) *IntentClassifier {
	return &IntentClassifier{gen: gen}
}

func (c *IntentClassifier) Classify(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(
		"Identify the intent of the following customer message. "+
			"Possible intents: product-inquiry, stock-inquiry, promotion-inquiry, complaint, greeting, order-placement, other. "+
			"Reply with the intent only.\nMessage: %s\nIntent:",
		message,
	)
	out, err := c.gen.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("classify intent: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(out)), nil
}

// SentimentClassifier labels a message with a coarse sentiment. Same output
// and error contract as IntentClassifier; the orchestrator defaults to
// neutral on failure.
type SentimentClassifier struct {
	gen adapter.TextGenerator
}

func NewSentimentClassifier(gen adapter.TextGenerator) *SentimentClassifier {
	return &SentimentClassifier{gen: gen}
}

func (c *SentimentClassifier) Classify(ctx context.Context, message string) (string, error) {
	prompt := fmt.Sprintf(
		"Analyze the sentiment of the following customer message. "+
			"Possible sentiments: positive, negative, neutral. "+
			"Reply with the sentiment only.\nMessage: %s\nSentiment:",
		message,
	)
	out, err := c.gen.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("classify sentiment: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(out)), nil
}

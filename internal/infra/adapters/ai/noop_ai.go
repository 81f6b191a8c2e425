package ai

import (
	"context"
	"time"

	"retail-ai-assistant/internal/domain/ports/adapter"
)

var (
	_ adapter.TextGenerator = (*NoopAIAdapter)(nil)
	_ adapter.Embedder      = (*NoopAIAdapter)(nil)
)

// NoopAIAdapter implements the AI ports for local/dev testing. It returns
// canned text and a fixed-size deterministic vector instead of calling a
// real provider.
type NoopAIAdapter struct{}

func NewNoopAIAdapter() *NoopAIAdapter {
	return &NoopAIAdapter{}
}

func (a *NoopAIAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return "This is a noop AI response.", nil
}

func (a *NoopAIAdapter) Embed(ctx context.Context, text string) ([]float32, error) {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	// Cheap deterministic vector derived from the text bytes.
	vec := make([]float32, 8)
	for i, b := range []byte(text) {
		vec[i%len(vec)] += float32(b) / 255
	}
	return vec, nil
}

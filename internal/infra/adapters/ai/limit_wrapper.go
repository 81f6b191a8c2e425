package ai

import (
	"context"
	"time"

	"retail-ai-assistant/internal/domain/ports/adapter"
	"retail-ai-assistant/internal/infra/metrics"
)

// Compile-time check
var _ adapter.TextGenerator = (*limitedGenerator)(nil)

type limitedGenerator struct {
	inner    adapter.TextGenerator
	provider string
	sem      chan struct{}
}

// NewLimitedGenerator caps concurrent generation calls and records per-call
// latency metrics. With maxConcurrent <= 0 the inner generator is returned
// unchanged (and unmetered).
func NewLimitedGenerator(inner adapter.TextGenerator, provider string, maxConcurrent int) adapter.TextGenerator {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedGenerator{
		inner:    inner,
		provider: provider,
		sem:      make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()

	start := time.Now()
	out, err := l.inner.Complete(ctx, prompt)
	metrics.ObserveAICall(l.provider, time.Since(start), err == nil)
	return out, err
}

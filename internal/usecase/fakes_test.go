package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"retail-ai-assistant/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// fakeGen is a scripted TextGenerator: it records every prompt and pops
// replies in order, falling back to "ok" when the script runs out.
type fakeGen struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (f *fakeGen) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "ok", nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func (f *fakeGen) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func (f *fakeGen) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

// memOrderRepo records saved orders in memory.
type memOrderRepo struct {
	mu      sync.Mutex
	saved   []*model.Order
	saveErr error
}

func (m *memOrderRepo) Save(ctx context.Context, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := *o
	m.saved = append(m.saved, &cp)
	return nil
}

func (m *memOrderRepo) savedOrders() []*model.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.Order(nil), m.saved...)
}

// fakeRetriever returns a fixed set of passages or a scripted error.
type fakeRetriever struct {
	passages []model.Passage
	err      error
	calls    int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, k int) ([]model.Passage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.passages, nil
}

package memory

import (
	"context"
	"sync"

	"retail-ai-assistant/internal/domain"
	"retail-ai-assistant/internal/domain/model"
	"retail-ai-assistant/internal/domain/ports/repository"
)

// Compile-time checks
var (
	_ repository.HistoryRepository    = (*SessionStore)(nil)
	_ repository.OrderStateRepository = (*SessionStore)(nil)
)

// SessionStore is the in-process session backend: per-session conversation
// history and order-capture state behind the same store ports the Redis
// backend implements. History is capped per session; when the cap is reached
// the oldest turn is dropped.
type SessionStore struct {
	mu      sync.RWMutex
	turns   map[string][]model.ConversationTurn
	states  map[string]*repository.OrderFlowState
	maxTurn int
}

func NewSessionStore(historyLimit int) *SessionStore {
	if historyLimit <= 0 {
		historyLimit = 20
	}
	return &SessionStore{
		turns:   make(map[string][]model.ConversationTurn),
		states:  make(map[string]*repository.OrderFlowState),
		maxTurn: historyLimit,
	}
}

func (s *SessionStore) Append(ctx context.Context, sessionID string, turn model.ConversationTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.turns[sessionID], turn)
	if len(list) > s.maxTurn {
		list = list[len(list)-s.maxTurn:]
	}
	s.turns[sessionID] = list
	return nil
}

func (s *SessionStore) List(ctx context.Context, sessionID string) ([]model.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.turns[sessionID]
	out := make([]model.ConversationTurn, len(list))
	copy(out, list)
	return out, nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*repository.OrderFlowState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := repository.OrderFlowState{Intent: st.Intent, Step: st.Step, Data: make(map[string]string, len(st.Data))}
	for k, v := range st.Data {
		cp.Data[k] = v
	}
	return &cp, nil
}

func (s *SessionStore) Set(ctx context.Context, sessionID string, state *repository.OrderFlowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := repository.OrderFlowState{Intent: state.Intent, Step: state.Step, Data: make(map[string]string, len(state.Data))}
	for k, v := range state.Data {
		cp.Data[k] = v
	}
	s.states[sessionID] = &cp
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}

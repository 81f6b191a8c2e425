package repository

import (
	"context"

	"retail-ai-assistant/internal/domain/model"
)

// HistoryRepository is the port for per-session conversation history.
// Implementations are bounded: once the configured cap is reached, the
// oldest turns are dropped first.
type HistoryRepository interface {
	Append(ctx context.Context, sessionID string, turn model.ConversationTurn) error
	List(ctx context.Context, sessionID string) ([]model.ConversationTurn, error)
}

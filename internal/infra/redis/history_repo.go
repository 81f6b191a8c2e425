package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"retail-ai-assistant/internal/domain/model"
	"retail-ai-assistant/internal/domain/ports/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo stores conversation turns as a Redis list, one JSON-encoded
// turn per element. The list is trimmed to the newest maxTurns entries on
// every append, and the whole key expires after the TTL.
type HistoryRepo struct {
	client   RedisClient
	maxTurns int
	ttl      time.Duration
}

func NewHistoryRepo(client RedisClient, maxTurns int, ttl time.Duration) *HistoryRepo {
	if maxTurns <= 0 {
		maxTurns = 20
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &HistoryRepo{client: client, maxTurns: maxTurns, ttl: ttl}
}

func (r *HistoryRepo) historyKey(sessionID string) string {
	return fmt.Sprintf("chat_history:%s", sessionID)
}

func (r *HistoryRepo) Append(ctx context.Context, sessionID string, turn model.ConversationTurn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}
	key := r.historyKey(sessionID)
	if err := r.client.RPush(ctx, key, data); err != nil {
		return err
	}
	if err := r.client.LTrim(ctx, key, int64(-r.maxTurns), -1); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, r.ttl)
}

func (r *HistoryRepo) List(ctx context.Context, sessionID string) ([]model.ConversationTurn, error) {
	raw, err := r.client.LRange(ctx, r.historyKey(sessionID), 0, -1)
	if err != nil {
		return nil, err
	}
	turns := make([]model.ConversationTurn, 0, len(raw))
	for _, item := range raw {
		var t model.ConversationTurn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, nil
}

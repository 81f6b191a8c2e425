package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"retail-ai-assistant/internal/domain"
	"retail-ai-assistant/internal/domain/ports/repository"
)

// Ensure the adapter implements the port interface.
var _ repository.OrderStateRepository = (*OrderStateRepo)(nil)

// OrderStateRepo keeps per-session order-capture state in Redis. Entries
// expire after the TTL so an abandoned flow does not pin the session forever.
type OrderStateRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewOrderStateRepo(client RedisClient, ttl time.Duration) *OrderStateRepo {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &OrderStateRepo{client: client, ttl: ttl}
}

func (s *OrderStateRepo) stateKey(sessionID string) string {
	return fmt.Sprintf("order_state:%s", sessionID)
}

func (s *OrderStateRepo) Get(ctx context.Context, sessionID string) (*repository.OrderFlowState, error) {
	data, err := s.client.Get(ctx, s.stateKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var state repository.OrderFlowState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *OrderStateRepo) Set(ctx context.Context, sessionID string, state *repository.OrderFlowState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.stateKey(sessionID), data, s.ttl)
}

func (s *OrderStateRepo) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.stateKey(sessionID))
}

package repository

import (
	"context"

	"retail-ai-assistant/internal/domain/model"
)

// OrderRepository persists finalized orders. Save reports an explicit
// result; the dialogue layer decides whether a failure is user-visible.
type OrderRepository interface {
	Save(ctx context.Context, order *model.Order) error
}

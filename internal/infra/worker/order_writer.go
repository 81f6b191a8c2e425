package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"retail-ai-assistant/internal/domain/model"
	"retail-ai-assistant/internal/domain/ports/repository"
	"retail-ai-assistant/internal/infra/metrics"
)

var _ repository.OrderRepository = (*AsyncOrderWriter)(nil)

// AsyncOrderWriter decorates an OrderRepository so completed orders are
// persisted off the request path. Save hands the write to the pool and
// returns immediately; a failed write is logged, not surfaced. Falls back to
// a synchronous write when the queue is full.
type AsyncOrderWriter struct {
	inner repository.OrderRepository
	pool  *Pool
	log   *zerolog.Logger
}

func NewAsyncOrderWriter(inner repository.OrderRepository, pool *Pool, logger *zerolog.Logger) *AsyncOrderWriter {
	return &AsyncOrderWriter{inner: inner, pool: pool, log: logger}
}

func (w *AsyncOrderWriter) Save(ctx context.Context, order *model.Order) error {
	err := w.pool.Submit(func(ctx context.Context) error {
		wctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := w.inner.Save(wctx, order); err != nil {
			w.log.Error().Err(err).Str("order_id", order.ID).Msg("background order save failed")
			return err
		}
		metrics.IncOrderCompleted()
		return nil
	})
	if err != nil {
		w.log.Warn().Err(err).Str("order_id", order.ID).Msg("order save queue unavailable; writing inline")
		if serr := w.inner.Save(ctx, order); serr != nil {
			return serr
		}
		metrics.IncOrderCompleted()
	}
	return nil
}

package retrieval

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	"github.com/rs/zerolog"

	"retail-ai-assistant/internal/domain/model"
	"retail-ai-assistant/internal/domain/ports/adapter"
	"retail-ai-assistant/internal/infra/metrics"
)

var _ adapter.ContextRetriever = (*PgVectorRetriever)(nil)

// PgVectorRetriever searches the documents table with pgvector cosine
// distance, one query per configured collection, and concatenates the
// results in collection order.
type PgVectorRetriever struct {
	pool        *pgxpool.Pool
	embed       adapter.Embedder
	collections []string
	queryPrefix string
	log         *zerolog.Logger
}

func NewPgVectorRetriever(pool *pgxpool.Pool, embed adapter.Embedder, collections []string, queryPrefix string, logger *zerolog.Logger) *PgVectorRetriever {
	return &PgVectorRetriever{
		pool:        pool,
		embed:       embed,
		collections: collections,
		queryPrefix: queryPrefix,
		log:         logger,
	}
}

func (r *PgVectorRetriever) Retrieve(ctx context.Context, query string, k int) ([]model.Passage, error) {
	start := time.Now()

	vec, err := r.embed.Embed(ctx, r.queryPrefix+query)
	if err != nil {
		metrics.ObserveRetrieval(time.Since(start), 0, false)
		return nil, fmt.Errorf("embed query: %w", err)
	}
	qv := pgvector.NewVector(vec)

	// embedding <=> $2 is cosine distance; smallest distance first.
	const q = `SELECT payload FROM documents WHERE collection = $1 ORDER BY embedding <=> $2 LIMIT $3;`

	var out []model.Passage
	for _, col := range r.collections {
		rows, err := r.pool.Query(ctx, q, col, qv, k)
		if err != nil {
			metrics.ObserveRetrieval(time.Since(start), len(out), false)
			return nil, fmt.Errorf("search collection %s: %w", col, err)
		}
		for rows.Next() {
			var p model.Passage
			if err := rows.Scan(&p); err != nil {
				rows.Close()
				metrics.ObserveRetrieval(time.Since(start), len(out), false)
				return nil, fmt.Errorf("scan payload: %w", err)
			}
			out = append(out, p)
		}
		if err := rows.Err(); err != nil {
			metrics.ObserveRetrieval(time.Since(start), len(out), false)
			return nil, fmt.Errorf("search collection %s: %w", col, err)
		}
	}

	metrics.ObserveRetrieval(time.Since(start), len(out), true)
	r.log.Debug().Int("passages", len(out)).Int("k", k).Msg("context retrieved")
	return out, nil
}

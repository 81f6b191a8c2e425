package adapter

import (
	"context"

	"retail-ai-assistant/internal/domain/model"
)

// ContextRetriever returns the top-k most relevant payload records per
// configured collection, concatenated collection by collection. Relevance
// order within a collection is preserved; there is no cross-collection
// re-ranking and no deduplication.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]model.Passage, error)
}

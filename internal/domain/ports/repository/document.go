package repository

import (
	"context"

	"retail-ai-assistant/internal/domain/model"
)

// DocumentRepository is used by the ingestion job to (re)populate a logical
// collection of embedded knowledge-base records.
type DocumentRepository interface {
	ReplaceCollection(ctx context.Context, collection string, docs []model.Document) error
}

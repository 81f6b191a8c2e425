package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"retail-ai-assistant/internal/domain/model"
	"retail-ai-assistant/internal/domain/ports/repository"
)

var _ repository.DocumentRepository = (*documentRepo)(nil)

type documentRepo struct{ pool *pgxpool.Pool }

func NewDocumentRepo(pool *pgxpool.Pool) *documentRepo {
	return &documentRepo{pool: pool}
}

// ReplaceCollection swaps the contents of one logical collection in a single
// transaction, so readers never observe a half-loaded collection.
func (r *documentRepo) ReplaceCollection(ctx context.Context, collection string, docs []model.Document) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE collection = $1;`, collection); err != nil {
		return fmt.Errorf("clear collection %s: %w", collection, err)
	}

	const q = `INSERT INTO documents (collection, payload, embedding) VALUES ($1,$2,$3);`
	for _, d := range docs {
		payload, err := json.Marshal(d.Payload)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		if _, err := tx.Exec(ctx, q, collection, payload, pgvector.NewVector(d.Embedding)); err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
	}
	return tx.Commit(ctx)
}

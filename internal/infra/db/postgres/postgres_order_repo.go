package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"retail-ai-assistant/internal/domain"
	"retail-ai-assistant/internal/domain/model"
	"retail-ai-assistant/internal/domain/ports/repository"
)

var _ repository.OrderRepository = (*orderRepo)(nil)

type orderRepo struct{ pool *pgxpool.Pool }

func NewOrderRepo(pool *pgxpool.Pool) *orderRepo {
	return &orderRepo{pool: pool}
}

func (r *orderRepo) Save(ctx context.Context, o *model.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	const q = `
INSERT INTO orders (
  id, user_ref, items, total_amount, customer_name, customer_phone, customer_address,
  status, discount_code, discount_amount, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12
);`
	_, err = r.pool.Exec(ctx, q,
		o.ID, o.UserRef, items, o.TotalAmount,
		o.Customer.Name, o.Customer.Phone, o.Customer.Address,
		string(o.Status), o.DiscountCode, o.DiscountAmount, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

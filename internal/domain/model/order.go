package model

import (
	"fmt"
	"time"

	"retail-ai-assistant/internal/domain"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

// OrderItem is a single product line on an order.
type OrderItem struct {
	ProductRef  string  `json:"product"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// CustomerInfo holds the delivery details collected during order capture.
// All fields must be non-empty before an order can be built.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is the finalized draft handed to the persistence layer. It is not
// mutated after construction.
type Order struct {
	ID             string       `json:"order_id"`
	UserRef        string       `json:"user"`
	Items          []OrderItem  `json:"items"`
	TotalAmount    float64      `json:"total_amount"`
	Customer       CustomerInfo `json:"customer_info"`
	Status         OrderStatus  `json:"status"`
	DiscountCode   string       `json:"discount_code,omitempty"`
	DiscountAmount float64      `json:"discount_amount"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewOrder builds a pending order and enforces the construction invariants:
// complete customer info and at least one item with quantity >= 1.
func NewOrder(id, userRef string, items []OrderItem, customer CustomerInfo) (*Order, error) {
	if id == "" || userRef == "" {
		return nil, fmt.Errorf("%w: order id and user ref are required", domain.ErrInvalidArgument)
	}
	if customer.Name == "" || customer.Phone == "" || customer.Address == "" {
		return nil, fmt.Errorf("%w: incomplete customer info", domain.ErrInvalidArgument)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", domain.ErrInvalidArgument)
	}
	total := 0.0
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item quantity must be >= 1", domain.ErrInvalidArgument)
		}
		total += it.LineTotal
	}
	now := time.Now()
	return &Order{
		ID:          id,
		UserRef:     userRef,
		Items:       items,
		TotalAmount: total,
		Customer:    customer,
		Status:      OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

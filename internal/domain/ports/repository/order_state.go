package repository

import (
	"context"

	"retail-ai-assistant/internal/domain/model"
)

// OrderStep defines the steps of the order-capture flow, in strict forward
// order. The flow never skips or revisits a step.
type OrderStep string

const (
	StepAskName    OrderStep = "ask_name"
	StepAskPhone   OrderStep = "ask_phone"
	StepAskAddress OrderStep = "ask_address"
	StepAskProduct OrderStep = "ask_product"
)

// OrderFlowState holds a session's progress through order capture. A session
// has at most one; it is removed when the flow completes.
type OrderFlowState struct {
	Intent string            `json:"intent"`
	Step   OrderStep         `json:"step"`
	Data   map[string]string `json:"data"` // collected fields: name, phone, address
}

// NewOrderFlowState returns a fresh state positioned at the first step.
func NewOrderFlowState() *OrderFlowState {
	return &OrderFlowState{
		Intent: model.IntentOrderPlacement,
		Step:   StepAskName,
		Data:   make(map[string]string),
	}
}

// OrderStateRepository is the port for managing a session's order-capture
// state. Get returns domain.ErrNotFound when the session has no active flow.
type OrderStateRepository interface {
	Get(ctx context.Context, sessionID string) (*OrderFlowState, error)
	Set(ctx context.Context, sessionID string, state *OrderFlowState) error
	Clear(ctx context.Context, sessionID string) error
}

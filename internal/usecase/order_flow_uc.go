package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"retail-ai-assistant/internal/domain/model"
	"retail-ai-assistant/internal/domain/ports/repository"
)

// productLinePattern matches "<product name> x<quantity>", e.g. "CocaCola Can x2".
// The "x" is literal and the digits must follow it immediately.
var productLinePattern = regexp.MustCompile(`^(.*) x([0-9]+)`)

// Order capture uses a fixed placeholder price and product reference; there is
// no catalog lookup in this flow.
const (
	placeholderProductRef = "product123"
	placeholderUnitPrice  = 1000.0
)

const (
	promptAskName        = "You would like to place an order? Please provide your name to get started."
	promptAskPhone       = "Please provide your phone number."
	promptAskAddress     = "What is the delivery address?"
	promptAskProduct     = "Which product would you like to order? (e.g. CocaCola Can x2)"
	promptBadProductLine = "Please use the format: product name xQuantity (e.g. CocaCola Can x2)."
	promptOrderFailed    = "Sorry, something went wrong while placing your order."
)

// OrderFlowUC drives the deterministic four-step order-capture script:
// ask_name -> ask_phone -> ask_address -> ask_product -> complete. The step
// only ever advances; the single retryable failure is a malformed product
// line, which re-prompts without touching the state.
type OrderFlowUC struct {
	states repository.OrderStateRepository
	orders repository.OrderRepository
	log    *zerolog.Logger
}

func NewOrderFlowUC(states repository.OrderStateRepository, orders repository.OrderRepository, logger *zerolog.Logger) *OrderFlowUC {
	return &OrderFlowUC{states: states, orders: orders, log: logger}
}

// Start creates a fresh flow state for the session and returns the opening
// prompt. The message that triggered the flow is consumed as the intent
// signal only and is not stored.
func (u *OrderFlowUC) Start(ctx context.Context, sessionID string) (string, error) {
	if err := u.states.Set(ctx, sessionID, repository.NewOrderFlowState()); err != nil {
		return "", fmt.Errorf("start order flow: %w", err)
	}
	return promptAskName, nil
}

// Handle advances the flow by one step using the raw message text and returns
// the next prompt. On completion it persists the order, clears the state and
// returns a confirmation carrying the new order id.
func (u *OrderFlowUC) Handle(ctx context.Context, sessionID, message string, state *repository.OrderFlowState) (string, error) {
	switch state.Step {
	case repository.StepAskName:
		state.Data["name"] = message
		state.Step = repository.StepAskPhone
		if err := u.states.Set(ctx, sessionID, state); err != nil {
			return "", err
		}
		return promptAskPhone, nil

	case repository.StepAskPhone:
		state.Data["phone"] = message
		state.Step = repository.StepAskAddress
		if err := u.states.Set(ctx, sessionID, state); err != nil {
			return "", err
		}
		return promptAskAddress, nil

	case repository.StepAskAddress:
		state.Data["address"] = message
		state.Step = repository.StepAskProduct
		if err := u.states.Set(ctx, sessionID, state); err != nil {
			return "", err
		}
		return promptAskProduct, nil

	case repository.StepAskProduct:
		return u.completeOrder(ctx, sessionID, message, state)
	}

	return promptOrderFailed, nil
}

func (u *OrderFlowUC) completeOrder(ctx context.Context, sessionID, message string, state *repository.OrderFlowState) (string, error) {
	m := productLinePattern.FindStringSubmatch(strings.TrimSpace(message))
	if m == nil {
		return promptBadProductLine, nil
	}
	quantity, err := strconv.Atoi(m[2])
	if err != nil || quantity < 1 {
		return promptBadProductLine, nil
	}

	item := model.OrderItem{
		ProductRef:  placeholderProductRef,
		ProductName: strings.TrimSpace(m[1]),
		Quantity:    quantity,
		UnitPrice:   placeholderUnitPrice,
		LineTotal:   float64(quantity) * placeholderUnitPrice,
	}
	order, err := model.NewOrder(uuid.NewString(), sessionID, []model.OrderItem{item}, model.CustomerInfo{
		Name:    state.Data["name"],
		Phone:   state.Data["phone"],
		Address: state.Data["address"],
	})
	if err != nil {
		u.log.Error().Err(err).Str("session_id", sessionID).Msg("order construction failed")
		if cerr := u.states.Clear(ctx, sessionID); cerr != nil {
			u.log.Warn().Err(cerr).Str("session_id", sessionID).Msg("clear order state failed")
		}
		return promptOrderFailed, nil
	}

	// Best effort: a failed write is logged, never surfaced mid-conversation.
	if err := u.orders.Save(ctx, order); err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("order save failed")
	}
	if err := u.states.Clear(ctx, sessionID); err != nil {
		return "", fmt.Errorf("clear order state: %w", err)
	}

	u.log.Info().Str("order_id", order.ID).Str("session_id", sessionID).
		Float64("total", order.TotalAmount).Msg("order placed")
	return fmt.Sprintf("Your order has been placed successfully!\nOrder ID: %s", order.ID), nil
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"retail-ai-assistant/internal/domain"
	"retail-ai-assistant/internal/domain/ports/repository"
	"retail-ai-assistant/internal/infra/memory"
)

func TestOrderFlow_FullCapture(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore(0)
	orders := &memOrderRepo{}
	uc := NewOrderFlowUC(store, orders, newTestLogger())

	const sessionID = "s1"

	reply, err := uc.Start(ctx, sessionID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !strings.Contains(reply, "name") {
		t.Errorf("expected opening prompt to ask for a name, got %q", reply)
	}

	steps := []struct {
		message    string
		wantPrompt string
		wantStep   repository.OrderStep
	}{
		{"An", "phone", repository.StepAskPhone},
		{"0900000000", "address", repository.StepAskAddress},
		{"HCM", "product", repository.StepAskProduct},
	}
	for _, s := range steps {
		state, err := store.Get(ctx, sessionID)
		if err != nil {
			t.Fatalf("state lookup before %q: %v", s.message, err)
		}
		reply, err := uc.Handle(ctx, sessionID, s.message, state)
		if err != nil {
			t.Fatalf("Handle(%q) failed: %v", s.message, err)
		}
		if !strings.Contains(strings.ToLower(reply), s.wantPrompt) {
			t.Errorf("Handle(%q): expected prompt about %q, got %q", s.message, s.wantPrompt, reply)
		}
		after, err := store.Get(ctx, sessionID)
		if err != nil {
			t.Fatalf("state lookup after %q: %v", s.message, err)
		}
		if after.Step != s.wantStep {
			t.Errorf("after %q: expected step %s, got %s", s.message, s.wantStep, after.Step)
		}
	}

	// Complete with a well-formed product line.
	state, _ := store.Get(ctx, sessionID)
	reply, err = uc.Handle(ctx, sessionID, "Coke x2", state)
	if err != nil {
		t.Fatalf("final Handle failed: %v", err)
	}

	saved := orders.savedOrders()
	if len(saved) != 1 {
		t.Fatalf("expected 1 saved order, got %d", len(saved))
	}
	o := saved[0]
	if len(o.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(o.Items))
	}
	item := o.Items[0]
	if item.ProductName != "Coke" || item.Quantity != 2 {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.LineTotal != 2*item.UnitPrice {
		t.Errorf("expected line total %v, got %v", 2*item.UnitPrice, item.LineTotal)
	}
	if o.TotalAmount != item.LineTotal {
		t.Errorf("expected total %v, got %v", item.LineTotal, o.TotalAmount)
	}
	if o.Customer.Name != "An" || o.Customer.Phone != "0900000000" || o.Customer.Address != "HCM" {
		t.Errorf("unexpected customer info: %+v", o.Customer)
	}
	if o.Status != "pending" {
		t.Errorf("expected pending status, got %s", o.Status)
	}
	if !strings.Contains(reply, o.ID) {
		t.Errorf("confirmation %q does not contain order id %s", reply, o.ID)
	}

	// Flow state is removed on completion.
	if _, err := store.Get(ctx, sessionID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected state to be cleared, got err=%v", err)
	}
}

func TestOrderFlow_ProductLineParsing(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed line re-prompts without advancing", func(t *testing.T) {
		store := memory.NewSessionStore(0)
		orders := &memOrderRepo{}
		uc := NewOrderFlowUC(store, orders, newTestLogger())

		state := repository.NewOrderFlowState()
		state.Step = repository.StepAskProduct
		state.Data = map[string]string{"name": "An", "phone": "0900000000", "address": "HCM"}
		if err := store.Set(ctx, "s1", state); err != nil {
			t.Fatal(err)
		}

		for _, bad := range []string{"Coke", "Coke x", "Coke x0", "x3"} {
			reply, err := uc.Handle(ctx, "s1", bad, state)
			if err != nil {
				t.Fatalf("Handle(%q) failed: %v", bad, err)
			}
			if !strings.Contains(reply, "format") {
				t.Errorf("Handle(%q): expected format re-prompt, got %q", bad, reply)
			}
			after, err := store.Get(ctx, "s1")
			if err != nil {
				t.Fatalf("state gone after %q: %v", bad, err)
			}
			if after.Step != repository.StepAskProduct {
				t.Errorf("Handle(%q): step moved to %s", bad, after.Step)
			}
		}
		if got := len(orders.savedOrders()); got != 0 {
			t.Errorf("expected no orders saved, got %d", got)
		}

		// Resubmitting a valid line completes the flow.
		state, _ = store.Get(ctx, "s1")
		reply, err := uc.Handle(ctx, "s1", "Coke x3", state)
		if err != nil {
			t.Fatalf("Handle(Coke x3) failed: %v", err)
		}
		if !strings.Contains(reply, "successfully") {
			t.Errorf("expected confirmation, got %q", reply)
		}
		saved := orders.savedOrders()
		if len(saved) != 1 || saved[0].Items[0].Quantity != 3 {
			t.Fatalf("expected one order with quantity 3, got %+v", saved)
		}
	})

	t.Run("product name is trimmed", func(t *testing.T) {
		store := memory.NewSessionStore(0)
		orders := &memOrderRepo{}
		uc := NewOrderFlowUC(store, orders, newTestLogger())

		state := repository.NewOrderFlowState()
		state.Step = repository.StepAskProduct
		state.Data = map[string]string{"name": "An", "phone": "0900000000", "address": "HCM"}
		_ = store.Set(ctx, "s1", state)

		if _, err := uc.Handle(ctx, "s1", "  CocaCola Can x12  ", state); err != nil {
			t.Fatal(err)
		}
		saved := orders.savedOrders()
		if len(saved) != 1 {
			t.Fatalf("expected one order, got %d", len(saved))
		}
		if saved[0].Items[0].ProductName != "CocaCola Can" || saved[0].Items[0].Quantity != 12 {
			t.Errorf("unexpected item: %+v", saved[0].Items[0])
		}
	})
}

func TestOrderFlow_SaveFailureStillConfirms(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore(0)
	orders := &memOrderRepo{saveErr: errors.New("database is down")}
	uc := NewOrderFlowUC(store, orders, newTestLogger())

	state := repository.NewOrderFlowState()
	state.Step = repository.StepAskProduct
	state.Data = map[string]string{"name": "An", "phone": "0900000000", "address": "HCM"}
	_ = store.Set(ctx, "s1", state)

	reply, err := uc.Handle(ctx, "s1", "Coke x2", state)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.Contains(reply, "successfully") {
		t.Errorf("expected confirmation despite save failure, got %q", reply)
	}
	if _, err := store.Get(ctx, "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected state cleared, got err=%v", err)
	}
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"retail-ai-assistant/internal/domain/model"
)

func TestBuildAnswerPrompt_SectionOrder(t *testing.T) {
	history := []model.ConversationTurn{
		{Question: "hi", Answer: "hello"},
	}
	passages := []model.Passage{
		{"name": "Coke Can", "price": "10000"},
	}
	prompt := buildAnswerPrompt("any stock left?", "stock-inquiry", "neutral", history, passages)

	markers := []string{
		"retail shopping assistant",
		"User intent: stock-inquiry",
		"User sentiment: neutral",
		"Conversation history:",
		"User: hi\nAssistant: hello",
		"Context:",
		"name: Coke Can, price: 10000",
		"User: any stock left?\nAssistant:",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(prompt, m)
		if idx < 0 {
			t.Fatalf("prompt missing %q:\n%s", m, prompt)
		}
		if idx < last {
			t.Errorf("marker %q appears out of order", m)
		}
		last = idx
	}
}

func TestBuildAnswerPrompt_EmptySections(t *testing.T) {
	prompt := buildAnswerPrompt("hello", "greeting", "positive", nil, nil)
	if !strings.Contains(prompt, "Conversation history:") {
		t.Error("history heading must be present even when empty")
	}
	if !strings.Contains(prompt, "Context:") {
		t.Error("context heading must be present even when empty")
	}
	if !strings.HasSuffix(prompt, "User: hello\nAssistant:") {
		t.Errorf("prompt must end with the question turn, got:\n%s", prompt)
	}
}

func TestRenderPassage_SortedKeys(t *testing.T) {
	p := model.Passage{"zeta": "1", "alpha": "2", "mid": "3"}
	got := renderPassage(p)
	want := "alpha: 2, mid: 3, zeta: 1"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAnswerGenerator_FailsOpen(t *testing.T) {
	gen := &fakeGen{err: errors.New("backend down")}
	a := NewAnswerGenerator(gen, newTestLogger())

	out := a.Generate(context.Background(), "q", "other", "neutral", nil, nil)
	if !strings.Contains(out, "backend down") {
		t.Errorf("expected failure detail in reply, got %q", out)
	}
}

func TestAnswerGenerator_TrimsReply(t *testing.T) {
	gen := &fakeGen{replies: []string{"  an answer \n"}}
	a := NewAnswerGenerator(gen, newTestLogger())

	out := a.Generate(context.Background(), "q", "other", "neutral", nil, nil)
	if out != "an answer" {
		t.Errorf("expected trimmed reply, got %q", out)
	}
}

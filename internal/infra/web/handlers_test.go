package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"retail-ai-assistant/internal/domain"
	"retail-ai-assistant/internal/domain/model"
	"retail-ai-assistant/internal/usecase"
)

// stubDialogue scripts the use-case layer so handlers can be tested in
// isolation.
type stubDialogue struct {
	answer  string
	askErr  error
	history []model.ConversationTurn
	asked   []string
}

func (s *stubDialogue) Ask(ctx context.Context, sessionID, question string) (string, error) {
	s.asked = append(s.asked, question)
	if s.askErr != nil {
		return "", s.askErr
	}
	return s.answer, nil
}

func (s *stubDialogue) History(ctx context.Context, sessionID string) ([]model.ConversationTurn, error) {
	return s.history, nil
}

func (s *stubDialogue) Greet() usecase.Greeting {
	return usecase.Greeting{
		Message:     "Hello, how can I help you today?",
		Suggestions: []string{"Ask about products", "Current stock", "Today's promotions"},
	}
}

func newTestServer(dialogue usecase.DialogueUseCase) *Server {
	logger := zerolog.Nop()
	return NewServer(0, dialogue, &logger)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleAsk_Success(t *testing.T) {
	stub := &stubDialogue{
		answer: "we have coke in stock",
		history: []model.ConversationTurn{
			{Question: "any coke?", Answer: "we have coke in stock"},
		},
	}
	s := newTestServer(stub)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/ask",
		`{"session_id":"s1","question":"any coke?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %q", ct)
	}

	var resp struct {
		SessionID string                   `json:"session_id"`
		Question  string                   `json:"question"`
		Answer    string                   `json:"answer"`
		History   []model.ConversationTurn `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID != "s1" || resp.Question != "any coke?" || resp.Answer != "we have coke in stock" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.History) != 1 {
		t.Errorf("expected 1 history turn, got %d", len(resp.History))
	}
}

func TestHandleAsk_BadJSON(t *testing.T) {
	stub := &stubDialogue{}
	s := newTestServer(stub)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/ask", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp["error"] == "" {
		t.Error("expected an error field in the body")
	}
	if len(stub.asked) != 0 {
		t.Error("use case must not be called on malformed body")
	}
}

func TestHandleAsk_InvalidArgument(t *testing.T) {
	stub := &stubDialogue{
		askErr: fmt.Errorf("%w: question must not be empty", domain.ErrInvalidArgument),
	}
	s := newTestServer(stub)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/ask",
		`{"session_id":"s1","question":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.Contains(resp["error"], "question must not be empty") {
		t.Errorf("expected validation detail, got %q", resp["error"])
	}
}

func TestHandleAsk_InternalError(t *testing.T) {
	stub := &stubDialogue{askErr: fmt.Errorf("session store exploded")}
	s := newTestServer(stub)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/ask",
		`{"session_id":"s1","question":"hi"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if strings.Contains(resp["error"], "exploded") {
		t.Errorf("internal detail leaked to the client: %q", resp["error"])
	}
}

func TestHandleAsk_EmptyHistorySerializesAsArray(t *testing.T) {
	stub := &stubDialogue{answer: "hello"}
	s := newTestServer(stub)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/ask",
		`{"session_id":"s1","question":"hi"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"history":[]`) {
		t.Errorf("expected empty history array, got %s", rec.Body.String())
	}
}

func TestHandleGreet(t *testing.T) {
	s := newTestServer(&stubDialogue{})

	rec := doRequest(t, s, http.MethodGet, "/api/v1/greet", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Message     string   `json:"message"`
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Hello, how can I help you today?" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if len(resp.Suggestions) != 3 {
		t.Errorf("expected 3 suggestions, got %v", resp.Suggestions)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(&stubDialogue{})

	rec := doRequest(t, s, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header on every response")
	}
}

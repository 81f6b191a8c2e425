package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"retail-ai-assistant/internal/domain"
	"retail-ai-assistant/internal/domain/model"
	"retail-ai-assistant/internal/domain/ports/adapter"
	"retail-ai-assistant/internal/domain/ports/repository"
)

// Compile-time check
var _ DialogueUseCase = (*dialogueUC)(nil)

// Greeting is the static payload returned by Greet.
type Greeting struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// DialogueUseCase is the per-session entry point: it routes a message either
// into an active order flow, into starting one, or into retrieval-augmented
// answering.
type DialogueUseCase interface {
	Ask(ctx context.Context, sessionID, question string) (string, error)
	History(ctx context.Context, sessionID string) ([]model.ConversationTurn, error)
	Greet() Greeting
}

type dialogueUC struct {
	intents    *IntentClassifier
	sentiments *SentimentClassifier
	answers    *AnswerGenerator
	orderFlow  *OrderFlowUC
	retriever  adapter.ContextRetriever
	history    repository.HistoryRepository
	states     repository.OrderStateRepository
	topK       int
	log        *zerolog.Logger
}

func NewDialogueUseCase(
	intents *IntentClassifier,
	sentiments *SentimentClassifier,
	answers *AnswerGenerator,
	orderFlow *OrderFlowUC,
	retriever adapter.ContextRetriever,
	history repository.HistoryRepository,
	states repository.OrderStateRepository,
	topK int,
	logger *zerolog.Logger,
) *dialogueUC {
	return &dialogueUC{
		intents:    intents,
		sentiments: sentiments,
		answers:    answers,
		orderFlow:  orderFlow,
		retriever:  retriever,
		history:    history,
		states:     states,
		topK:       topK,
		log:        logger,
	}
}

// Ask handles one message end-to-end. Exactly one piece of session state is
// mutated per call: either the order-capture state or the history, never both.
func (d *dialogueUC) Ask(ctx context.Context, sessionID, question string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	question = strings.TrimSpace(question)
	if sessionID == "" {
		return "", fmt.Errorf("%w: session_id is required to keep conversation history", domain.ErrInvalidArgument)
	}
	if question == "" {
		return "", fmt.Errorf("%w: question must not be empty", domain.ErrInvalidArgument)
	}

	// A session mid-capture is handled by the script alone: no classification,
	// no retrieval for this turn.
	state, err := d.states.Get(ctx, sessionID)
	if err == nil && state != nil {
		return d.orderFlow.Handle(ctx, sessionID, question, state)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		d.log.Warn().Err(err).Str("session_id", sessionID).Msg("order state lookup failed; treating as no active flow")
	}

	intent, err := d.intents.Classify(ctx, question)
	if err != nil {
		d.log.Warn().Err(err).Msg("intent classification failed; defaulting to other")
		intent = model.IntentOther
	}
	if intent == model.IntentOrderPlacement {
		return d.orderFlow.Start(ctx, sessionID)
	}

	sentiment, err := d.sentiments.Classify(ctx, question)
	if err != nil {
		d.log.Warn().Err(err).Msg("sentiment classification failed; defaulting to neutral")
		sentiment = model.SentimentNeutral
	}

	passages, err := d.retriever.Retrieve(ctx, question, d.topK)
	if err != nil {
		d.log.Warn().Err(err).Msg("context retrieval failed; answering without context")
		passages = nil
	}

	turns, err := d.history.List(ctx, sessionID)
	if err != nil {
		d.log.Warn().Err(err).Str("session_id", sessionID).Msg("history fetch failed; answering without history")
		turns = nil
	}

	answer := d.answers.Generate(ctx, question, intent, sentiment, turns, passages)

	if err := d.history.Append(ctx, sessionID, model.ConversationTurn{Question: question, Answer: answer}); err != nil {
		d.log.Warn().Err(err).Str("session_id", sessionID).Msg("history append failed")
	}
	return answer, nil
}

func (d *dialogueUC) History(ctx context.Context, sessionID string) ([]model.ConversationTurn, error) {
	return d.history.List(ctx, strings.TrimSpace(sessionID))
}

// Greet is pure: identical output on every call, independent of any session.
func (d *dialogueUC) Greet() Greeting {
	return Greeting{
		Message:     "Hello, how can I help you today?",
		Suggestions: []string{"Ask about products", "Current stock", "Today's promotions"},
	}
}

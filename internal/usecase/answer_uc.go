package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"retail-ai-assistant/internal/domain/model"
	"retail-ai-assistant/internal/domain/ports/adapter"
)

// AnswerGenerator assembles the grounded prompt (framing, classified intent
// and sentiment, full history, retrieved context, new question) and makes a
// single generation call. It fails open: on a collaborator error the user
// still receives text, with the failure detail inlined.
type AnswerGenerator struct {
	gen adapter.TextGenerator
	log *zerolog.Logger
}

func NewAnswerGenerator(gen adapter.TextGenerator, logger *zerolog.Logger) *AnswerGenerator {
	return &AnswerGenerator{gen: gen, log: logger}
}

func (a *AnswerGenerator) Generate(ctx context.Context, question, intent, sentiment string, history []model.ConversationTurn, passages []model.Passage) string {
	prompt := buildAnswerPrompt(question, intent, sentiment, history, passages)
	reply, err := a.gen.Complete(ctx, prompt)
	if err != nil {
		a.log.Error().Err(err).Msg("answer generation failed")
		return fmt.Sprintf("Something went wrong while answering: %v", err)
	}
	return strings.TrimSpace(reply)
}

func buildAnswerPrompt(question, intent, sentiment string, history []model.ConversationTurn, passages []model.Passage) string {
	var b strings.Builder
	b.WriteString("You are a smart and friendly retail shopping assistant. ")
	b.WriteString("Answer accurately based on the provided context and keep the conversation coherent.\n")
	fmt.Fprintf(&b, "User intent: %s\n", intent)
	fmt.Fprintf(&b, "User sentiment: %s\n", sentiment)
	b.WriteString("Conversation history:\n")
	for _, t := range history {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", t.Question, t.Answer)
	}
	b.WriteString("\nContext:\n")
	for _, p := range passages {
		b.WriteString(renderPassage(p))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nUser: %s\nAssistant:", question)
	return b.String()
}

// renderPassage flattens a payload record into a single "key: value" line.
// Keys are sorted so the rendering is stable.
func renderPassage(p model.Passage) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, p[k]))
	}
	return strings.Join(parts, ", ")
}

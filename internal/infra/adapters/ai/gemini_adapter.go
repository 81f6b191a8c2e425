package ai

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"retail-ai-assistant/internal/domain/ports/adapter"
)

var (
	_ adapter.TextGenerator = (*GeminiAdapter)(nil)
	_ adapter.Embedder      = (*GeminiAdapter)(nil)
)

// GeminiAdapter implements text generation and embedding via the official
// Gemini SDK.
type GeminiAdapter struct {
	client     *genai.Client
	model      string
	embedModel string
	maxOut     int32
}

func NewGeminiAdapter(ctx context.Context, apiKey, baseURL, model, embedModel string, maxOut int) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAdapter{client: c, model: model, embedModel: embedModel, maxOut: int32(maxOut)}, nil
}

func (g *GeminiAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{MaxOutputTokens: g.maxOut},
	)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (g *GeminiAdapter) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini: empty embedding")
	}
	return resp.Embeddings[0].Values, nil
}

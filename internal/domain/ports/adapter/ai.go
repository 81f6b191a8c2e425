package adapter

import "context"

// TextGenerator is the port for the generative text collaborator. One prompt
// in, one completion out; history is flattened into the prompt by the caller.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder encodes free text into a vector for semantic search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

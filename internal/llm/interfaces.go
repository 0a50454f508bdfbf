package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm.go -package=mocks repoqa/internal/llm Embedder,Generator

import "context"

// Embedder converts a single text into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces synthesized text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

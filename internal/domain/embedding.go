package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// HealthChecker verifies embedding provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the
// decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Float64s converts the vector to the float64 form the document store expects.
func (r EmbeddingResult) Float64s() []float64 {
	out := make([]float64, len(r.Embedding))
	for i, v := range r.Embedding {
		out[i] = float64(v)
	}
	return out
}

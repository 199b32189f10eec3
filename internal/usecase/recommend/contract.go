package recommend

import (
	"context"

	"github.com/kailas-cloud/retailstore/internal/domain"
	"github.com/kailas-cloud/retailstore/internal/domain/search"
)

// Repository defines the storage contract for similarity lookups.
type Repository interface {
	EmbeddingRef(ctx context.Context, id string) (domain.EmbeddingRef, error)
	VectorSearch(ctx context.Context, plan search.VectorPlan) ([]domain.ProductSummary, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Assistant answers a question about a product image.
type Assistant interface {
	Answer(ctx context.Context, question, imageURL string) (string, error)
}

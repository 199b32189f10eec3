// Package recommend implements vector-similarity recommendations and the
// image-grounded fashion assistant.
package recommend

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/retailstore/internal/domain"
	"github.com/kailas-cloud/retailstore/internal/domain/search"
)

// Answer is the assistant's reply together with products similar to it.
type Answer struct {
	Text            string
	Recommendations []domain.ProductSummary
}

// Service handles similarity recommendations and assistant conversations.
type Service struct {
	repo      Repository
	embed     Embedder
	assistant Assistant
}

// New creates a recommendation service.
func New(repo Repository, embed Embedder, assistant Assistant) *Service {
	return &Service{repo: repo, embed: embed, assistant: assistant}
}

// ForProduct returns products whose embeddings are nearest to the given
// product's, excluding the product itself.
func (s *Service) ForProduct(ctx context.Context, id string) ([]domain.ProductSummary, error) {
	ref, err := s.repo.EmbeddingRef(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(ref.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: product %s", domain.ErrMissingEmbedding, id)
	}

	plan := search.NewVectorPlan(ref.Embeddings, id, search.RecommendLimit)
	hits, err := s.repo.VectorSearch(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return hits, nil
}

// Ask answers a question about a product using its first image, then embeds
// the exchange to find products similar to what was discussed.
func (s *Service) Ask(ctx context.Context, productID, question string) (Answer, error) {
	if productID == "" {
		return Answer{}, fmt.Errorf("%w: product_id is required", domain.ErrInvalidInput)
	}
	if question == "" {
		return Answer{}, fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}

	ref, err := s.repo.EmbeddingRef(ctx, productID)
	if err != nil {
		return Answer{}, err
	}
	if len(ref.Embeddings) == 0 {
		return Answer{}, fmt.Errorf("%w: product %s", domain.ErrMissingEmbedding, productID)
	}
	if len(ref.Images) == 0 {
		return Answer{}, fmt.Errorf("%w: product %s", domain.ErrMissingImage, productID)
	}

	text, err := s.assistant.Answer(ctx, question, ref.Images[0])
	if err != nil {
		return Answer{}, fmt.Errorf("assistant answer: %w", err)
	}

	exchange := fmt.Sprintf("Question: %s\nAnswer: %s", question, text)
	emb, err := s.embed.Embed(ctx, exchange)
	if err != nil {
		return Answer{}, fmt.Errorf("embed exchange: %w", err)
	}

	plan := search.NewVectorPlan(emb.Float64s(), productID, search.AssistantLimit)
	hits, err := s.repo.VectorSearch(ctx, plan)
	if err != nil {
		return Answer{}, fmt.Errorf("vector search: %w", err)
	}

	return Answer{Text: text, Recommendations: hits}, nil
}

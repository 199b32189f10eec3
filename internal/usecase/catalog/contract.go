package catalog

import (
	"context"

	"github.com/kailas-cloud/retailstore/internal/domain"
	"github.com/kailas-cloud/retailstore/internal/domain/search"
)

// Repository defines the storage contract for catalog operations.
type Repository interface {
	Search(ctx context.Context, plan search.Plan) ([]domain.ProductSummary, error)
	Count(ctx context.Context, plan search.Plan) (int, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Insert(ctx context.Context, p *domain.Product) (string, error)
	Update(ctx context.Context, id string, u domain.ProductUpdate) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, filter map[string]any) (int64, error)
}

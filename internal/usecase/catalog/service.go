// Package catalog implements product browsing, search, and CRUD.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/retailstore/internal/domain"
	"github.com/kailas-cloud/retailstore/internal/domain/search"
)

// Page is one page of search results together with pagination metadata.
type Page struct {
	Products      []domain.ProductSummary
	TotalProducts int
	TotalPages    int
	CurrentPage   int
}

// Service handles catalog search and product lifecycle.
type Service struct {
	repo Repository
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search builds a staged plan from the request parameters and runs the page
// query and the total count over the same filter.
func (s *Service) Search(ctx context.Context, params search.Params) (Page, error) {
	plan, err := search.BuildPlan(params)
	if err != nil {
		return Page{}, err
	}

	products, err := s.repo.Search(ctx, plan)
	if err != nil {
		return Page{}, fmt.Errorf("search products: %w", err)
	}

	total, err := s.repo.Count(ctx, plan)
	if err != nil {
		return Page{}, fmt.Errorf("count products: %w", err)
	}

	return Page{
		Products:      products,
		TotalProducts: total,
		TotalPages:    search.TotalPages(total),
		CurrentPage:   params.Page,
	}, nil
}

// Get fetches one product by identifier.
func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new product. Products created through the API
// are flagged created_manually so they participate in the browse fallback and
// the embedding annotators.
func (s *Service) Create(ctx context.Context, p *domain.Product) (string, error) {
	if p.Name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if p.Price <= 0 {
		return "", fmt.Errorf("%w: price must be positive", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	p.CreatedManually = true
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Availability == "" {
		if p.Stock > 0 {
			p.Availability = domain.AvailabilityInStock
		} else {
			p.Availability = domain.AvailabilityOutOfStock
		}
	}

	id, err := s.repo.Insert(ctx, p)
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

// Update applies a partial modification to a product.
func (s *Service) Update(ctx context.Context, id string, u domain.ProductUpdate) error {
	if u.IsEmpty() {
		return fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}
	return s.repo.Update(ctx, id, u)
}

// Delete removes one product.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// BulkDelete removes every product matching the filter and returns the number
// of deleted documents. An empty filter defaults to the API-created products
// rather than the whole catalog.
func (s *Service) BulkDelete(ctx context.Context, filter map[string]any) (int64, error) {
	if len(filter) == 0 {
		filter = map[string]any{"created_manually": true}
	}
	return s.repo.DeleteMany(ctx, filter)
}

// Package suggest implements name autocomplete.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/retailstore/internal/domain"
	"github.com/kailas-cloud/retailstore/internal/domain/search"
)

// Repository defines the storage contract for autocomplete lookups.
type Repository interface {
	Autocomplete(ctx context.Context, plan search.AutocompletePlan) ([]domain.Suggestion, error)
}

// Service handles name suggestions for the search box.
type Service struct {
	repo Repository
}

// New creates a suggestion service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns up to a handful of name completions for a prefix.
// A blank query short-circuits to an empty list without hitting the store.
func (s *Service) Suggest(ctx context.Context, query string) ([]domain.Suggestion, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.Suggestion{}, nil
	}

	suggestions, err := s.repo.Autocomplete(ctx, search.NewAutocompletePlan(query))
	if err != nil {
		return nil, fmt.Errorf("autocomplete: %w", err)
	}
	return suggestions, nil
}

package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/retailstore/internal/domain"
	"github.com/kailas-cloud/retailstore/internal/domain/search"
)

type mockRepo struct {
	suggestions []domain.Suggestion
	err         error
	called      bool
	lastPlan    search.AutocompletePlan
}

func (m *mockRepo) Autocomplete(_ context.Context, plan search.AutocompletePlan) ([]domain.Suggestion, error) {
	m.called = true
	m.lastPlan = plan
	return m.suggestions, m.err
}

func TestSuggest(t *testing.T) {
	repo := &mockRepo{suggestions: []domain.Suggestion{
		{ID: "1", Name: "Sneakers"},
		{ID: "2", Name: "Sneaker Socks"},
	}}
	svc := New(repo)

	got, err := svc.Suggest(context.Background(), "sneak")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("suggestions = %d, want 2", len(got))
	}
	if repo.lastPlan.Query() != "sneak" {
		t.Errorf("query = %s, want sneak", repo.lastPlan.Query())
	}
}

func TestSuggest_BlankQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t"} {
		repo := &mockRepo{}
		svc := New(repo)

		got, err := svc.Suggest(context.Background(), q)
		if err != nil {
			t.Fatalf("Suggest(%q): %v", q, err)
		}
		if len(got) != 0 {
			t.Errorf("Suggest(%q) = %v, want empty", q, got)
		}
		if repo.called {
			t.Errorf("Suggest(%q) must not hit the store", q)
		}
	}
}

func TestSuggest_RepoError(t *testing.T) {
	repo := &mockRepo{err: errors.New("index missing")}
	svc := New(repo)

	if _, err := svc.Suggest(context.Background(), "boots"); err == nil {
		t.Fatal("expected error")
	}
}

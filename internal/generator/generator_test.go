package generator

import (
	"testing"

	"github.com/kailas-cloud/retailstore/internal/domain"
)

func TestSKU(t *testing.T) {
	g := New(1)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sku := g.SKU()
		if len(sku) != 8 {
			t.Fatalf("sku %q: len = %d, want 8", sku, len(sku))
		}
		for _, c := range sku {
			if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
				t.Fatalf("sku %q: invalid character %q", sku, c)
			}
		}
		seen[sku] = true
	}
	if len(seen) < 95 {
		t.Errorf("only %d distinct SKUs out of 100", len(seen))
	}
}

func TestProduct_Invariants(t *testing.T) {
	g := New(42)

	for i := 0; i < 200; i++ {
		p := g.Product("Men", "Shoes", "Sneakers")

		if p.Gender != "Men" || p.MainCategory != "Shoes" || p.SubCategory != "Sneakers" {
			t.Fatalf("category fields = %s/%s/%s", p.Gender, p.MainCategory, p.SubCategory)
		}
		if p.Price < 10 || p.Price > 500 {
			t.Errorf("price = %f, want [10, 500]", p.Price)
		}
		if p.Rating < 1 || p.Rating > 5 {
			t.Errorf("rating = %f, want [1, 5]", p.Rating)
		}
		if len(p.Reviews) > 10 {
			t.Errorf("reviews = %d, want <= 10", len(p.Reviews))
		}
		if p.Stock < 1 || p.Stock > 100 {
			t.Errorf("stock = %d, want [1, 100]", p.Stock)
		}
		if len(p.Images) < 1 || len(p.Images) > 3 {
			t.Errorf("images = %d, want [1, 3]", len(p.Images))
		}
		if p.CreatedManually {
			t.Error("fixture products must not set created_manually")
		}
		if len(p.Embeddings) != 0 {
			t.Error("fixture products must not carry embeddings")
		}

		if p.PreOwned && p.Condition == nil {
			t.Error("pre-owned product must have a condition")
		}
		if !p.PreOwned && p.Condition != nil {
			t.Errorf("new product must not have a condition, got %q", *p.Condition)
		}

		if p.Availability != domain.AvailabilityInStock &&
			p.Availability != domain.AvailabilityOutOfStock {
			t.Errorf("availability = %q", p.Availability)
		}

		if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
			t.Error("timestamps must be set")
		}
	}
}

func TestProduct_DesignerFlag(t *testing.T) {
	g := New(7)

	designers := make(map[string]bool)
	for _, d := range designerBrands["Women"] {
		designers[d] = true
	}

	for i := 0; i < 200; i++ {
		p := g.Product("Women", "Clothing", "Dresses")
		if p.Designer != designers[p.Brand] {
			t.Fatalf("brand %q: designer = %v, want %v", p.Brand, p.Designer, designers[p.Brand])
		}
	}
}

func TestBatch_Count(t *testing.T) {
	g := New(3)

	combos := 0
	for _, gender := range []string{"Men", "Women"} {
		for _, subs := range Categories[gender] {
			combos += len(subs)
		}
	}

	products := g.Batch(2)
	if len(products) != combos*2 {
		t.Errorf("batch = %d products, want %d", len(products), combos*2)
	}
}

// Package search models staged catalog query plans. A Plan is built once per
// request from the user-facing filter parameters and executed by the product
// repository; the count sub-plan always shares the primary plan's filter stage
// so the returned page and the reported total agree.
package search

import (
	"fmt"

	"github.com/kailas-cloud/retailstore/internal/domain"
)

// Engine parameters fixed by the catalog design.
const (
	// PageSize is the fixed number of products per result page.
	PageSize = 12

	// FilterMaxEdits and FilterPrefixLength bound fuzzy matching on filter
	// clauses: at most 2 edits, with the first 3 characters matching exactly
	// so short queries do not fuzz into unrelated terms.
	FilterMaxEdits     = 2
	FilterPrefixLength = 3

	// SponsoredBoost is the ranking-time score multiplier for sponsored
	// listings. It never excludes organic results.
	SponsoredBoost = 3

	// SearchIndex is the text search index backing filtered browsing.
	SearchIndex = "default"
)

// Fuzzy bounds the edit tolerance of a text clause.
type Fuzzy struct {
	MaxEdits     int
	PrefixLength int
}

// Clause is a single condition inside the compound stage: either a text match
// over one or more fields or a boolean equality, with an optional score boost.
type Clause struct {
	query string
	paths []string
	fuzzy *Fuzzy

	equalsPath  string
	equalsValue bool
	boost       float64
}

// NewTextClause creates a required text match over the given fields with the
// fixed filter fuzzy tolerance.
func NewTextClause(query string, paths ...string) Clause {
	return Clause{
		query: query,
		paths: paths,
		fuzzy: &Fuzzy{MaxEdits: FilterMaxEdits, PrefixLength: FilterPrefixLength},
	}
}

// NewEqualsClause creates an exact boolean equality condition.
func NewEqualsClause(path string, value bool) Clause {
	return Clause{equalsPath: path, equalsValue: value}
}

// NewBoostClause creates an equality condition that multiplies the relevance
// score instead of filtering.
func NewBoostClause(path string, value bool, boost float64) Clause {
	return Clause{equalsPath: path, equalsValue: value, boost: boost}
}

// IsText reports whether this is a text match clause.
func (c Clause) IsText() bool { return c.query != "" }

// Query returns the text to match.
func (c Clause) Query() string { return c.query }

// Paths returns the target fields of a text clause.
func (c Clause) Paths() []string { return c.paths }

// FuzzyOpts returns the edit tolerance of a text clause, or nil.
func (c Clause) FuzzyOpts() *Fuzzy { return c.fuzzy }

// EqualsPath returns the target field of an equality clause.
func (c Clause) EqualsPath() string { return c.equalsPath }

// EqualsValue returns the required value of an equality clause.
func (c Clause) EqualsValue() bool { return c.equalsValue }

// Boost returns the score multiplier, or 0 for plain clauses.
func (c Clause) Boost() float64 { return c.boost }

// Params are the user-facing catalog filters. All fields are optional; Page
// is 1-based and defaults to 1 upstream.
type Params struct {
	Query       string
	Category    string
	SubCategory string
	Gender      string
	Brand       string
	OnSale      bool
	Page        int
}

// hasFilters reports whether any filter parameter was supplied.
func (p Params) hasFilters() bool {
	return p.Query != "" || p.Category != "" || p.SubCategory != "" ||
		p.Gender != "" || p.Brand != "" || p.OnSale
}

// Plan is an immutable staged catalog query: a compound filter stage (or the
// manually-created fallback), pagination offsets, and the fixed projection.
type Plan struct {
	must   []Clause
	should []Clause
	skip   int
	limit  int
	page   int
}

// BuildPlan translates filter parameters into a Plan.
//
// Every non-empty textual filter becomes a fuzzy must clause against its
// designated fields; the on-sale flag becomes an exact equality must clause.
// When at least one filter is active a sponsored should-boost is appended so
// sponsored listings outrank equally relevant organic ones. With no filters at
// all the plan falls back to a plain match on manually-created documents,
// keeping bulk-generated fixtures out of the default listing.
//
// Page numbers below 1 would produce a negative skip; they are rejected here
// rather than clamped.
func BuildPlan(p Params) (Plan, error) {
	if p.Page < 1 {
		return Plan{}, fmt.Errorf("%w: page must be a positive integer, got %d",
			domain.ErrInvalidInput, p.Page)
	}

	var must, should []Clause

	if p.Query != "" {
		must = append(must, NewTextClause(p.Query,
			"name", "description", "brand", "sub_category", "material", "colors"))
	}
	if p.Category != "" {
		must = append(must, NewTextClause(p.Category, "main_category"))
	}
	if p.SubCategory != "" {
		must = append(must, NewTextClause(p.SubCategory, "sub_category"))
	}
	if p.Gender != "" {
		must = append(must, NewTextClause(p.Gender, "gender"))
	}
	if p.Brand != "" {
		must = append(must, NewTextClause(p.Brand, "brand"))
	}
	if p.OnSale {
		must = append(must, NewEqualsClause("on_sale", true))
	}

	if p.hasFilters() {
		should = append(should, NewBoostClause("sponsored", true, SponsoredBoost))
	}

	return Plan{
		must:   must,
		should: should,
		skip:   (p.Page - 1) * PageSize,
		limit:  PageSize,
		page:   p.Page,
	}, nil
}

// Must returns the required clauses (AND semantics).
func (p Plan) Must() []Clause { return p.must }

// Should returns the ranking-only clauses (OR semantics, non-exclusionary).
func (p Plan) Should() []Clause { return p.should }

// HasFilters reports whether the plan uses the compound search stage. When
// false the plan is the manually-created browse fallback.
func (p Plan) HasFilters() bool { return len(p.must) > 0 || len(p.should) > 0 }

// Skip returns the pagination offset.
func (p Plan) Skip() int { return p.skip }

// Limit returns the page size.
func (p Plan) Limit() int { return p.limit }

// Page returns the requested 1-based page number.
func (p Plan) Page() int { return p.page }

// ProjectionFields is the allow-list of fields returned per result. The
// engine-computed relevance score is always added alongside.
func ProjectionFields() []string {
	return []string{
		"name", "price", "description", "brand", "main_category",
		"sub_category", "images", "sponsored", "on_sale", "created_manually",
	}
}

// TotalPages computes the page count for a result total at the fixed page size.
func TotalPages(total int) int {
	return (total + PageSize - 1) / PageSize
}

package search

// Vector search parameters fixed by the catalog design.
const (
	// VectorIndex is the nearest-neighbour index over product text embeddings.
	VectorIndex = "vs_details"
	// VectorPath is the document field holding the embedding vector.
	VectorPath = "embeddings"
	// VectorCandidates is the candidate pool scanned per lookup.
	VectorCandidates = 50
	// RecommendLimit caps product-page recommendations.
	RecommendLimit = 10
	// AssistantLimit caps assistant-driven recommendations.
	AssistantLimit = 7
)

// VectorPlan is a single-stage nearest-neighbour lookup. Unlike Plan there is
// no boolean composition; the only post-condition is excluding the source
// document itself.
type VectorPlan struct {
	vector    []float64
	limit     int
	excludeID string
}

// NewVectorPlan creates a similarity lookup excluding the source document.
// excludeID is the hex form of the source identifier.
func NewVectorPlan(vector []float64, excludeID string, limit int) VectorPlan {
	return VectorPlan{vector: vector, limit: limit, excludeID: excludeID}
}

// Vector returns the query embedding.
func (p VectorPlan) Vector() []float64 { return p.vector }

// Limit returns the result cap.
func (p VectorPlan) Limit() int { return p.limit }

// Candidates returns the fixed candidate pool size.
func (p VectorPlan) Candidates() int { return VectorCandidates }

// ExcludeID returns the hex identifier excluded from results.
func (p VectorPlan) ExcludeID() string { return p.excludeID }

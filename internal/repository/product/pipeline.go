package product

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kailas-cloud/retailstore/internal/domain/search"
)

// filterStage is the shared filter stage of a plan: a compound $search when
// any clause exists, otherwise the manually-created browse fallback. The count
// pipeline reuses this stage verbatim so page and total always agree.
func filterStage(p search.Plan) bson.D {
	if !p.HasFilters() {
		return bson.D{{Key: "$match", Value: bson.M{"created_manually": true}}}
	}
	return bson.D{{Key: "$search", Value: bson.M{
		"index": search.SearchIndex,
		"compound": bson.M{
			"must":   clausesToBSON(p.Must()),
			"should": clausesToBSON(p.Should()),
		},
	}}}
}

func clausesToBSON(clauses []search.Clause) bson.A {
	out := bson.A{}
	for _, c := range clauses {
		out = append(out, clauseToBSON(c))
	}
	return out
}

func clauseToBSON(c search.Clause) bson.M {
	if c.IsText() {
		text := bson.M{
			"query": c.Query(),
			"path":  pathValue(c.Paths()),
		}
		if f := c.FuzzyOpts(); f != nil {
			text["fuzzy"] = bson.M{
				"maxEdits":     f.MaxEdits,
				"prefixLength": f.PrefixLength,
			}
		}
		return bson.M{"text": text}
	}

	equals := bson.M{
		"value": c.EqualsValue(),
		"path":  c.EqualsPath(),
	}
	if c.Boost() > 0 {
		equals["score"] = bson.M{"boost": bson.M{"value": c.Boost()}}
	}
	return bson.M{"equals": equals}
}

// pathValue collapses a single-element path list to a plain string, matching
// the engine's preferred form.
func pathValue(paths []string) any {
	if len(paths) == 1 {
		return paths[0]
	}
	return paths
}

func searchPipeline(p search.Plan) mongo.Pipeline {
	return mongo.Pipeline{
		filterStage(p),
		bson.D{{Key: "$sort", Value: bson.D{{Key: "sponsored", Value: -1}}}},
		bson.D{{Key: "$skip", Value: p.Skip()}},
		bson.D{{Key: "$limit", Value: p.Limit()}},
		bson.D{{Key: "$project", Value: projection()}},
	}
}

func countPipeline(p search.Plan) mongo.Pipeline {
	return mongo.Pipeline{
		filterStage(p),
		bson.D{{Key: "$count", Value: "total"}},
	}
}

func vectorPipeline(p search.VectorPlan, exclude primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$vectorSearch", Value: bson.M{
			"index":         search.VectorIndex,
			"queryVector":   p.Vector(),
			"path":          search.VectorPath,
			"numCandidates": p.Candidates(),
			"limit":         p.Limit(),
		}}},
		bson.D{{Key: "$match", Value: bson.M{"_id": bson.M{"$ne": exclude}}}},
		bson.D{{Key: "$project", Value: projection()}},
	}
}

func autocompletePipeline(p search.AutocompletePlan) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$search", Value: bson.M{
			"index": search.AutocompleteIndex,
			"autocomplete": bson.M{
				"query": p.Query(),
				"path":  "name",
				"fuzzy": bson.M{"maxEdits": search.AutocompleteMaxEdits},
			},
		}}},
		bson.D{{Key: "$limit", Value: p.Limit()}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "name", Value: 1},
		}}},
	}
}

// projection is the fixed result allow-list plus the engine relevance score.
func projection() bson.D {
	proj := bson.D{}
	for _, f := range search.ProjectionFields() {
		proj = append(proj, bson.E{Key: f, Value: 1})
	}
	proj = append(proj, bson.E{Key: "score", Value: bson.M{"$meta": "searchScore"}})
	return proj
}

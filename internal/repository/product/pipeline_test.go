package product

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kailas-cloud/retailstore/internal/domain/search"
)

func mustPlan(t *testing.T, p search.Params) search.Plan {
	t.Helper()
	plan, err := search.BuildPlan(p)
	if err != nil {
		t.Fatalf("BuildPlan: %v", err)
	}
	return plan
}

func TestFilterStage_Fallback(t *testing.T) {
	plan := mustPlan(t, search.Params{Page: 1})

	stage := filterStage(plan)
	want := bson.D{{Key: "$match", Value: bson.M{"created_manually": true}}}
	if !reflect.DeepEqual(stage, want) {
		t.Errorf("stage = %v, want %v", stage, want)
	}
}

func TestFilterStage_Compound(t *testing.T) {
	plan := mustPlan(t, search.Params{Query: "denim", Brand: "Diesel", Page: 1})

	stage := filterStage(plan)
	if stage[0].Key != "$search" {
		t.Fatalf("stage key = %s, want $search", stage[0].Key)
	}

	body, ok := stage[0].Value.(bson.M)
	if !ok {
		t.Fatalf("stage body type %T", stage[0].Value)
	}
	if body["index"] != search.SearchIndex {
		t.Errorf("index = %v, want %s", body["index"], search.SearchIndex)
	}

	compound := body["compound"].(bson.M)
	must := compound["must"].(bson.A)
	should := compound["should"].(bson.A)
	if len(must) != 2 {
		t.Fatalf("must clauses = %d, want 2", len(must))
	}
	if len(should) != 1 {
		t.Fatalf("should clauses = %d, want 1", len(should))
	}

	free := must[0].(bson.M)["text"].(bson.M)
	if free["query"] != "denim" {
		t.Errorf("free-text query = %v", free["query"])
	}
	wantFuzzy := bson.M{"maxEdits": 2, "prefixLength": 3}
	if !reflect.DeepEqual(free["fuzzy"], wantFuzzy) {
		t.Errorf("fuzzy = %v, want %v", free["fuzzy"], wantFuzzy)
	}
	wantPaths := []string{"name", "description", "brand", "sub_category", "material", "colors"}
	if !reflect.DeepEqual(free["path"], wantPaths) {
		t.Errorf("path = %v, want %v", free["path"], wantPaths)
	}

	brand := must[1].(bson.M)["text"].(bson.M)
	if brand["path"] != "brand" {
		t.Errorf("single-field path = %v, want plain string brand", brand["path"])
	}

	boost := should[0].(bson.M)["equals"].(bson.M)
	if boost["path"] != "sponsored" || boost["value"] != true {
		t.Errorf("boost clause = %v", boost)
	}
	wantScore := bson.M{"boost": bson.M{"value": float64(3)}}
	if !reflect.DeepEqual(boost["score"], wantScore) {
		t.Errorf("boost score = %v, want %v", boost["score"], wantScore)
	}
}

func TestFilterStage_OnSaleEquals(t *testing.T) {
	plan := mustPlan(t, search.Params{OnSale: true, Page: 1})

	stage := filterStage(plan)
	compound := stage[0].Value.(bson.M)["compound"].(bson.M)
	must := compound["must"].(bson.A)
	if len(must) != 1 {
		t.Fatalf("must clauses = %d, want 1", len(must))
	}

	equals := must[0].(bson.M)["equals"].(bson.M)
	if equals["path"] != "on_sale" || equals["value"] != true {
		t.Errorf("equals = %v", equals)
	}
	if _, hasBoost := equals["score"]; hasBoost {
		t.Error("on_sale must clause must not carry a boost")
	}
}

func TestSearchPipeline_StageOrder(t *testing.T) {
	plan := mustPlan(t, search.Params{Query: "boots", Page: 3})

	pipeline := searchPipeline(plan)
	wantKeys := []string{"$search", "$sort", "$skip", "$limit", "$project"}
	if len(pipeline) != len(wantKeys) {
		t.Fatalf("pipeline stages = %d, want %d", len(pipeline), len(wantKeys))
	}
	for i, key := range wantKeys {
		if pipeline[i][0].Key != key {
			t.Errorf("stage[%d] = %s, want %s", i, pipeline[i][0].Key, key)
		}
	}

	if skip := pipeline[2][0].Value; skip != 24 {
		t.Errorf("skip = %v, want 24", skip)
	}
	if limit := pipeline[3][0].Value; limit != 12 {
		t.Errorf("limit = %v, want 12", limit)
	}

	sort := pipeline[1][0].Value.(bson.D)
	if sort[0].Key != "sponsored" || sort[0].Value != -1 {
		t.Errorf("sort = %v, want sponsored descending", sort)
	}
}

func TestCountPipeline_SharesFilterStage(t *testing.T) {
	for _, params := range []search.Params{
		{Page: 1},
		{Query: "denim", Page: 2},
		{Category: "Shoes", OnSale: true, Page: 1},
	} {
		plan := mustPlan(t, params)

		countP := countPipeline(plan)
		searchP := searchPipeline(plan)

		if len(countP) != 2 {
			t.Fatalf("count pipeline stages = %d, want 2", len(countP))
		}
		if !reflect.DeepEqual(countP[0], searchP[0]) {
			t.Errorf("count filter stage diverges from search filter stage: %v vs %v",
				countP[0], searchP[0])
		}
		if countP[1][0].Key != "$count" || countP[1][0].Value != "total" {
			t.Errorf("terminal stage = %v, want $count total", countP[1])
		}
	}
}

func TestProjection_AllowListWithScore(t *testing.T) {
	proj := projection()

	want := append([]string{}, search.ProjectionFields()...)
	if len(proj) != len(want)+1 {
		t.Fatalf("projection entries = %d, want %d", len(proj), len(want)+1)
	}
	for i, f := range want {
		if proj[i].Key != f || proj[i].Value != 1 {
			t.Errorf("projection[%d] = %v, want %s:1", i, proj[i], f)
		}
	}

	score := proj[len(proj)-1]
	if score.Key != "score" {
		t.Fatalf("last projection entry = %s, want score", score.Key)
	}
	if !reflect.DeepEqual(score.Value, bson.M{"$meta": "searchScore"}) {
		t.Errorf("score meta = %v", score.Value)
	}
}

func TestVectorPipeline(t *testing.T) {
	exclude := primitive.NewObjectID()
	plan := search.NewVectorPlan([]float64{0.5, 0.25}, exclude.Hex(), search.RecommendLimit)

	pipeline := vectorPipeline(plan, exclude)
	if len(pipeline) != 3 {
		t.Fatalf("pipeline stages = %d, want 3", len(pipeline))
	}

	vs := pipeline[0][0]
	if vs.Key != "$vectorSearch" {
		t.Fatalf("stage[0] = %s, want $vectorSearch", vs.Key)
	}
	body := vs.Value.(bson.M)
	if body["index"] != "vs_details" || body["path"] != "embeddings" {
		t.Errorf("vector stage = %v", body)
	}
	if body["numCandidates"] != 50 || body["limit"] != 10 {
		t.Errorf("candidates/limit = %v/%v, want 50/10", body["numCandidates"], body["limit"])
	}

	match := pipeline[1][0].Value.(bson.M)
	wantMatch := bson.M{"_id": bson.M{"$ne": exclude}}
	if !reflect.DeepEqual(match, wantMatch) {
		t.Errorf("exclusion match = %v, want %v", match, wantMatch)
	}

	if pipeline[2][0].Key != "$project" {
		t.Errorf("stage[2] = %s, want $project", pipeline[2][0].Key)
	}
}

func TestAutocompletePipeline(t *testing.T) {
	plan := search.NewAutocompletePlan("sneak")

	pipeline := autocompletePipeline(plan)
	if len(pipeline) != 3 {
		t.Fatalf("pipeline stages = %d, want 3", len(pipeline))
	}

	body := pipeline[0][0].Value.(bson.M)
	if body["index"] != "name_ac" {
		t.Errorf("index = %v, want name_ac", body["index"])
	}
	ac := body["autocomplete"].(bson.M)
	if ac["query"] != "sneak" || ac["path"] != "name" {
		t.Errorf("autocomplete body = %v", ac)
	}
	if !reflect.DeepEqual(ac["fuzzy"], bson.M{"maxEdits": 1}) {
		t.Errorf("fuzzy = %v, want maxEdits 1", ac["fuzzy"])
	}

	if limit := pipeline[1][0].Value; limit != 5 {
		t.Errorf("limit = %v, want 5", limit)
	}

	proj := pipeline[2][0].Value.(bson.D)
	if len(proj) != 2 || proj[0].Key != "_id" || proj[1].Key != "name" {
		t.Errorf("projection = %v, want _id and name only", proj)
	}
}

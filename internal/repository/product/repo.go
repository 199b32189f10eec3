// Package product adapts the MongoDB products collection to the domain
// contracts: CRUD, staged search plans, vector similarity, and autocomplete.
package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/kailas-cloud/retailstore/internal/domain"
	"github.com/kailas-cloud/retailstore/internal/domain/search"
)

// Repository executes catalog operations against a MongoDB collection.
type Repository struct {
	coll *mongo.Collection
}

// New creates a product repository over the given collection.
func New(coll *mongo.Collection) *Repository {
	return &Repository{coll: coll}
}

// ParseID converts a hex identifier, mapping malformed input to
// domain.ErrInvalidProductID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidProductID, id)
	}
	return oid, nil
}

// Search executes the plan's primary pipeline and returns one projected page.
func (r *Repository) Search(ctx context.Context, plan search.Plan) ([]domain.ProductSummary, error) {
	cur, err := r.coll.Aggregate(ctx, searchPipeline(plan))
	if err != nil {
		return nil, fmt.Errorf("aggregate search: %w", err)
	}

	var page []domain.ProductSummary
	if err := cur.All(ctx, &page); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}
	return page, nil
}

// Count executes the plan's count pipeline. An empty aggregation result means
// zero matches, not an error.
func (r *Repository) Count(ctx context.Context, plan search.Plan) (int, error) {
	cur, err := r.coll.Aggregate(ctx, countPipeline(plan))
	if err != nil {
		return 0, fmt.Errorf("aggregate count: %w", err)
	}

	var rows []struct {
		Total int `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode count result: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// Get fetches one product by hex identifier.
func (r *Repository) Get(ctx context.Context, id string) (domain.Product, error) {
	oid, err := ParseID(id)
	if err != nil {
		return domain.Product{}, err
	}

	var p domain.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

// Insert stores a new product and returns its hex identifier.
func (r *Repository) Insert(ctx context.Context, p *domain.Product) (string, error) {
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return "", fmt.Errorf("insert product: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Update applies a partial modification and refreshes updated_at.
func (r *Repository) Update(ctx context.Context, id string, u domain.ProductUpdate) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	update := bson.D{
		{Key: "$set", Value: u},
		{Key: "$currentDate", Value: bson.M{"updated_at": true}},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete removes one product by hex identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DeleteMany removes every product matching the filter and returns the count.
// A filter matching nothing deletes zero documents and is not an error.
func (r *Repository) DeleteMany(ctx context.Context, filter map[string]any) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M(filter))
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	return res.DeletedCount, nil
}

// EmbeddingRef loads only the embedding vector and image URLs of a product.
func (r *Repository) EmbeddingRef(ctx context.Context, id string) (domain.EmbeddingRef, error) {
	oid, err := ParseID(id)
	if err != nil {
		return domain.EmbeddingRef{}, err
	}

	opts := options.FindOne().SetProjection(bson.M{"embeddings": 1, "images": 1})
	var ref domain.EmbeddingRef
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&ref); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.EmbeddingRef{}, domain.ErrProductNotFound
		}
		return domain.EmbeddingRef{}, fmt.Errorf("find embedding ref: %w", err)
	}
	return ref, nil
}

// VectorSearch runs a nearest-neighbour lookup, excluding the plan's source
// document from the results.
func (r *Repository) VectorSearch(ctx context.Context, plan search.VectorPlan) ([]domain.ProductSummary, error) {
	exclude, err := ParseID(plan.ExcludeID())
	if err != nil {
		return nil, err
	}

	cur, err := r.coll.Aggregate(ctx, vectorPipeline(plan, exclude))
	if err != nil {
		return nil, fmt.Errorf("aggregate vector search: %w", err)
	}

	var hits []domain.ProductSummary
	if err := cur.All(ctx, &hits); err != nil {
		return nil, fmt.Errorf("decode vector results: %w", err)
	}
	return hits, nil
}

// Autocomplete runs a name suggestion lookup.
func (r *Repository) Autocomplete(ctx context.Context, plan search.AutocompletePlan) ([]domain.Suggestion, error) {
	cur, err := r.coll.Aggregate(ctx, autocompletePipeline(plan))
	if err != nil {
		return nil, fmt.Errorf("aggregate autocomplete: %w", err)
	}

	var rows []struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode autocomplete results: %w", err)
	}

	suggestions := make([]domain.Suggestion, len(rows))
	for i, row := range rows {
		suggestions[i] = domain.Suggestion{ID: row.ID.Hex(), Name: row.Name}
	}
	return suggestions, nil
}

// SetEmbeddings stores the text embedding vector of a product.
func (r *Repository) SetEmbeddings(ctx context.Context, id primitive.ObjectID, vec []float64) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id},
		bson.D{{Key: "$set", Value: bson.M{"embeddings": vec}}})
	if err != nil {
		return fmt.Errorf("set embeddings: %w", err)
	}
	return nil
}

// SetImageEmbeddings stores per-image embedding vectors of a product.
func (r *Repository) SetImageEmbeddings(ctx context.Context, id primitive.ObjectID, vecs [][]float64) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id},
		bson.D{{Key: "$set", Value: bson.M{"image_embeddings": vecs}}})
	if err != nil {
		return fmt.Errorf("set image embeddings: %w", err)
	}
	return nil
}

// FindManuallyCreated streams every manually-created product through fn.
// Used by the embedding annotator commands.
func (r *Repository) FindManuallyCreated(ctx context.Context, fn func(domain.Product) error) error {
	cur, err := r.coll.Find(ctx, bson.M{"created_manually": true})
	if err != nil {
		return fmt.Errorf("find manually created: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	for cur.Next(ctx) {
		var p domain.Product
		if err := cur.Decode(&p); err != nil {
			return fmt.Errorf("decode product: %w", err)
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("cursor: %w", err)
	}
	return nil
}

// InsertMany bulk-inserts fixture products.
func (r *Repository) InsertMany(ctx context.Context, products []domain.Product) (int, error) {
	docs := make([]any, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert products: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// Ping verifies store connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.coll.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (r *Repository) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := r.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Availability states a product can be in.
const (
	AvailabilityInStock    = "In Stock"
	AvailabilityOutOfStock = "Out of Stock"
)

// Review is a single customer review attached to a product. Reviews are an
// ordered sequence with no uniqueness constraint.
type Review struct {
	Author  string    `bson:"author" json:"author"`
	Comment string    `bson:"comment" json:"comment"`
	Date    time.Time `bson:"date" json:"date"`
	Rating  int       `bson:"rating" json:"rating"`
}

// Product is a catalog document as stored in MongoDB.
//
// Embeddings, when present, must have the fixed dimensionality of the
// embedding model that produced them; mixing dimensionalities breaks vector
// search. CreatedManually distinguishes API-inserted products from
// bulk-generated fixtures: only the former appear on the unfiltered browse
// fallback and only they get embeddings from the annotator commands.
type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Gender          string             `bson:"gender" json:"gender"`
	MainCategory    string             `bson:"main_category" json:"main_category"`
	SubCategory     string             `bson:"sub_category" json:"sub_category"`
	SKU             string             `bson:"sku" json:"sku"`
	Name            string             `bson:"name" json:"name"`
	Price           float64            `bson:"price" json:"price"`
	Description     string             `bson:"description" json:"description"`
	Sizes           []string           `bson:"sizes" json:"sizes"`
	Colors          []string           `bson:"colors" json:"colors"`
	Brand           string             `bson:"brand" json:"brand"`
	Designer        bool               `bson:"designer" json:"designer"`
	Material        string             `bson:"material" json:"material"`
	Images          []string           `bson:"images" json:"images"`
	Stock           int                `bson:"stock" json:"stock"`
	Availability    string             `bson:"availability" json:"availability"`
	Rating          float64            `bson:"rating" json:"rating"`
	Reviews         []Review           `bson:"reviews" json:"reviews"`
	OnSale          bool               `bson:"on_sale" json:"on_sale"`
	PreOwned        bool               `bson:"pre_owned" json:"pre_owned"`
	Condition       *string            `bson:"condition" json:"condition"`
	Sponsored       bool               `bson:"sponsored" json:"sponsored"`
	NewIn           bool               `bson:"new_in" json:"new_in"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
	CreatedManually bool               `bson:"created_manually,omitempty" json:"created_manually,omitempty"`
	Embeddings      []float64          `bson:"embeddings,omitempty" json:"embeddings,omitempty"`
	ImageEmbeddings [][]float64        `bson:"image_embeddings,omitempty" json:"image_embeddings,omitempty"`
}

// ProductSummary is the fixed projection returned by search, recommendation,
// and assistant lookups. Score is the engine-computed relevance score.
type ProductSummary struct {
	ID              primitive.ObjectID `bson:"_id" json:"-"`
	Name            string             `bson:"name" json:"name"`
	Price           float64            `bson:"price" json:"price"`
	Description     string             `bson:"description" json:"description"`
	Brand           string             `bson:"brand" json:"brand"`
	MainCategory    string             `bson:"main_category" json:"main_category"`
	SubCategory     string             `bson:"sub_category" json:"sub_category"`
	Images          []string           `bson:"images" json:"images"`
	Sponsored       bool               `bson:"sponsored" json:"sponsored"`
	OnSale          bool               `bson:"on_sale" json:"on_sale"`
	CreatedManually bool               `bson:"created_manually" json:"created_manually"`
	Score           float64            `bson:"score" json:"score"`
}

// Suggestion is a single autocomplete hit.
type Suggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EmbeddingRef is the minimal product slice the similarity flows need:
// the stored embedding vector plus image URLs for the assistant.
type EmbeddingRef struct {
	Embeddings []float64 `bson:"embeddings"`
	Images     []string  `bson:"images"`
}

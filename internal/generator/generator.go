// Package generator synthesizes catalog fixture products for seeding a
// development database.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/kailas-cloud/retailstore/internal/domain"
)

// Categories maps gender to main category to subcategories.
var Categories = map[string]map[string][]string{
	"Women": {
		"Clothing": {
			"Dresses", "T-shirts & tops", "Trousers", "Jeans", "Shirts & Blouses",
			"Jackets & Blazers", "Sweatshirts & Hoodies", "Skirts", "Coats",
		},
		"Shoes": {
			"Sneakers", "Sandals", "Pumps", "High heels", "Flat shoes", "Mules",
			"Ankle boots", "Ballerinas", "Boots", "Sports shoes", "Beach shoes",
			"Bridal shoes", "House Shoes", "Outdoor shoes",
		},
		"Accessories": {
			"Bags & cases", "Jewellery", "Sunglasses", "Hats & headscarves", "Belts",
			"Watches", "Wallets & card holders", "Scarves", "Blue-light glasses",
			"Gloves", "Umbrellas",
		},
	},
	"Men": {
		"Clothing": {
			"T-shirts & Polos", "Shirts", "Sweatshirts & Hoodies", "Trousers", "Jeans",
			"Shorts", "Jackets", "Suits & Tailoring", "Coats",
		},
		"Shoes": {
			"Sneakers", "Open shoes", "Lace-up shoes", "Loafers", "Business shoes",
			"Boots", "Sports shoes", "Outdoor shoes", "Slippers",
		},
		"Accessories": {
			"Bags & cases", "Jewellery", "Sunglasses", "Hats & headscarves", "Belts",
			"Watches", "Wallets & card holders", "Scarves", "Blue-light glasses",
			"Gloves", "Umbrellas",
		},
	},
}

var brands = map[string][]string{
	"Men": {
		"Carhartt", "Polo Ralph Lauren", "Armani", "Calvin Klein", "Diesel", "G-Star",
		"GAP", "Helly Hansen", "Hugo Boss", "Lacoste", "Levi's", "Ted Baker",
		"The North Face", "Timberland", "Tommy Hilfiger",
	},
	"Women": {
		"Anna Field", "Levi's", "The North Face", "Hoka", "Rapha", "Ciele",
		"Polo Ralph Lauren", "ARKET", "Missoni", "Proenza Schouler", "The Kooples",
		"MM6 Maison Margiela",
	},
}

var designerBrands = map[string][]string{
	"Men":   {"Dolce&Gabbana", "Mont Blanc", "Paul Smith", "Prada", "rag & bone", "Versace", "Vivienne Westwood"},
	"Women": {"Alexander McQueen", "Gucci", "Loren Stewart", "Victoria Beckham", "Vivienne Westwood"},
}

var materials = []string{
	"Cashmere", "Chiffon", "Cord", "Cotton", "Denim", "Fleece", "Leather", "Lace",
	"Linen", "Polyester", "Satin", "Silk", "Synthetic", "Wool",
}

var conditions = []string{"Average", "Good", "Great", "Like New", "New"}

var sizes = []string{"XS", "S", "M", "L", "XL"}

var colors = []string{
	"Red", "Blue", "Green", "Yellow", "Orange", "Purple", "Pink", "Brown",
	"Black", "Grey", "White",
}

const placeholderImage = "https://img.freepik.com/free-vector/summer-clothes-set_74855-446.jpg"

const skuAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces random fixture products.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator seeded from the given source.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// SKU returns a random 8-character uppercase alphanumeric stock keeping unit.
func (g *Generator) SKU() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = skuAlphabet[g.rng.Intn(len(skuAlphabet))]
	}
	return string(b)
}

// randomDate returns a timestamp within the last six months.
func (g *Generator) randomDate() time.Time {
	now := time.Now().UTC()
	span := 6 * 30 * 24 * time.Hour
	offset := time.Duration(g.rng.Int63n(int64(span)))
	return now.Add(-span).Add(offset)
}

func (g *Generator) review() domain.Review {
	return domain.Review{
		Author:  fmt.Sprintf("user%d", 1000+g.rng.Intn(9000)),
		Comment: "This is a sample review.",
		Date:    g.randomDate(),
		Rating:  1 + g.rng.Intn(5),
	}
}

// sample picks n distinct elements from pool in random order.
func (g *Generator) sample(pool []string, n int) []string {
	idx := g.rng.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}

// Product synthesizes one fixture product for the given gender and categories.
// Fixture products never set created_manually so they stay off the unfiltered
// browse fallback and out of the embedding annotators.
func (g *Generator) Product(gender, mainCategory, subCategory string) domain.Product {
	pool := append(append([]string{}, brands[gender]...), designerBrands[gender]...)
	brand := pool[g.rng.Intn(len(pool))]

	designer := false
	for _, d := range designerBrands[gender] {
		if d == brand {
			designer = true
			break
		}
	}

	preOwned := g.rng.Intn(2) == 0
	var condition *string
	if preOwned {
		c := conditions[g.rng.Intn(len(conditions))]
		condition = &c
	}

	availability := domain.AvailabilityInStock
	if g.rng.Float64() <= 0.1 {
		availability = domain.AvailabilityOutOfStock
	}

	images := make([]string, 1+g.rng.Intn(3))
	for i := range images {
		images[i] = placeholderImage
	}

	reviews := make([]domain.Review, g.rng.Intn(11))
	for i := range reviews {
		reviews[i] = g.review()
	}

	return domain.Product{
		Gender:       gender,
		MainCategory: mainCategory,
		SubCategory:  subCategory,
		SKU:          g.SKU(),
		Name:         fmt.Sprintf("%s Product %d", brand, 1000+g.rng.Intn(9000)),
		Price:        round2(10 + g.rng.Float64()*490),
		Description:  fmt.Sprintf("A high-quality %s from %s.", strings.ToLower(subCategory), brand),
		Sizes:        g.sample(sizes, 1+g.rng.Intn(len(sizes))),
		Colors:       g.sample(colors, 1+g.rng.Intn(5)),
		Brand:        brand,
		Designer:     designer,
		Material:     materials[g.rng.Intn(len(materials))],
		Images:       images,
		Stock:        1 + g.rng.Intn(100),
		Availability: availability,
		Rating:       round1(1 + g.rng.Float64()*4),
		Reviews:      reviews,
		OnSale:       g.rng.Intn(2) == 0,
		PreOwned:     preOwned,
		Condition:    condition,
		Sponsored:    g.rng.Intn(2) == 0,
		NewIn:        g.rng.Intn(2) == 0,
		CreatedAt:    g.randomDate(),
		UpdatedAt:    g.randomDate(),
	}
}

// Batch produces count products for every gender, category, and subcategory
// combination.
func (g *Generator) Batch(count int) []domain.Product {
	var products []domain.Product
	for _, gender := range []string{"Men", "Women"} {
		for mainCategory, subCategories := range Categories[gender] {
			for _, subCategory := range subCategories {
				for i := 0; i < count; i++ {
					products = append(products, g.Product(gender, mainCategory, subCategory))
				}
			}
		}
	}
	return products
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}

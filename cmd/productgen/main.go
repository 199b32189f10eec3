// Command productgen seeds the products collection with generated fixture
// documents for every gender, category, and subcategory combination.
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/retailstore/internal/config"
	"github.com/kailas-cloud/retailstore/internal/db"
	"github.com/kailas-cloud/retailstore/internal/generator"
	logpkg "github.com/kailas-cloud/retailstore/internal/logger"
	productrepo "github.com/kailas-cloud/retailstore/internal/repository/product"
)

func main() {
	count := flag.Int("count", 1000, "products per gender/category/subcategory combination")
	batchSize := flag.Int("batch", 1000, "insert batch size")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	client, err := db.Connect(ctx, cfg.Database.URI,
		time.Duration(cfg.Database.ConnectTimeoutSec)*time.Second)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(ctx) }()

	coll := client.Database(cfg.Database.Database).Collection(cfg.Database.Collection)
	repo := productrepo.New(coll)

	gen := generator.New(*seed)
	products := gen.Batch(*count)
	logger.Info("Generated fixture products",
		zap.Int("total", len(products)),
		zap.Int("per_subcategory", *count),
	)

	inserted := 0
	for start := 0; start < len(products); start += *batchSize {
		end := start + *batchSize
		if end > len(products) {
			end = len(products)
		}

		n, err := repo.InsertMany(ctx, products[start:end])
		if err != nil {
			logger.Fatal("Failed to insert batch",
				zap.Int("offset", start), zap.Error(err))
		}
		inserted += n
	}

	logger.Info("Inserted fixture products", zap.Int("inserted", inserted))
}

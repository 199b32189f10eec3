// Command embedgen backfills text embeddings for every manually-created
// product so it becomes visible to vector search.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/retailstore/internal/cache"
	"github.com/kailas-cloud/retailstore/internal/config"
	"github.com/kailas-cloud/retailstore/internal/db"
	"github.com/kailas-cloud/retailstore/internal/domain"
	logpkg "github.com/kailas-cloud/retailstore/internal/logger"
	"github.com/kailas-cloud/retailstore/internal/metrics"
	"github.com/kailas-cloud/retailstore/internal/repository/embcache"
	productrepo "github.com/kailas-cloud/retailstore/internal/repository/product"
	openaiTransport "github.com/kailas-cloud/retailstore/internal/transport/openai"
)

// embeddingText concatenates the searchable fields of a product in the fixed
// order the vector index was built with.
func embeddingText(p domain.Product) string {
	return fmt.Sprintf(
		"Sub Category: %s; Product Name: %s; Product Description: %s; Product Materials:  %s; Available Colours: %s; ",
		p.SubCategory, p.Name, p.Description, p.Material, strings.Join(p.Colors, " "),
	)
}

func main() {
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

	metrics.RegisterAIMetrics()
	embedder := buildEmbedder(cfg, logger)

	processed := 0
	err = repo.FindManuallyCreated(ctx, func(p domain.Product) error {
		result, err := embedder.Embed(ctx, embeddingText(p))
		if err != nil {
			return fmt.Errorf("embed product %s: %w", p.ID.Hex(), err)
		}
		if err := repo.SetEmbeddings(ctx, p.ID, result.Float64s()); err != nil {
			return err
		}
		processed++
		return nil
	})
	if err != nil {
		logger.Fatal("Embedding backfill failed", zap.Error(err))
	}

	logger.Info("Embeddings generated", zap.Int("products", processed))
}

func buildEmbedder(cfg config.Config, logger *zap.Logger) domain.Embedder {
	base := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.EmbeddingModel,
		Dimensions: cfg.OpenAI.EmbeddingDimensions,
		Logger:     logger,
	})

	if len(cfg.Cache.Addrs) == 0 {
		return base
	}

	store, err := cache.NewStore(cache.Config{
		Addrs:    cfg.Cache.Addrs,
		Password: cfg.Cache.Password,
	})
	if err != nil {
		logger.Warn("Embedding cache unavailable, continuing without it", zap.Error(err))
		return base
	}
	return embcache.New(base, store, metrics.EmbeddingCacheTotal, logger)
}

// Command imageembed backfills per-image embeddings for every
// manually-created product. Each image is described by the multimodal chat
// model and the description is embedded as text.
package main

import (
	"context"
	"fmt"
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
	assistant := openaiTransport.NewAssistant(&openaiTransport.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Logger:  logger,
	}, cfg.OpenAI.ChatModel)

	processed := 0
	err = repo.FindManuallyCreated(ctx, func(p domain.Product) error {
		var vectors [][]float64
		for _, imageURL := range p.Images {
			description, err := assistant.Describe(ctx, imageURL)
			if err != nil {
				// Skip unreadable images, keep the rest of the document going
				logger.Warn("Failed to describe image",
					zap.String("product_id", p.ID.Hex()),
					zap.String("image", imageURL),
					zap.Error(err))
				continue
			}

			result, err := embedder.Embed(ctx, description)
			if err != nil {
				return fmt.Errorf("embed image description for %s: %w", p.ID.Hex(), err)
			}
			vectors = append(vectors, result.Float64s())
		}

		if err := repo.SetImageEmbeddings(ctx, p.ID, vectors); err != nil {
			return err
		}
		processed++
		return nil
	})
	if err != nil {
		logger.Fatal("Image embedding backfill failed", zap.Error(err))
	}

	logger.Info("Image embeddings generated", zap.Int("products", processed))
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

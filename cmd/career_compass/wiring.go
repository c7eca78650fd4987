package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ShreekarSeelavantula/career-compass/config"
	"github.com/ShreekarSeelavantula/career-compass/internal/embedding"
	"github.com/ShreekarSeelavantula/career-compass/internal/matching"
	"github.com/ShreekarSeelavantula/career-compass/internal/ranking"
	"github.com/ShreekarSeelavantula/career-compass/store"
	"github.com/ShreekarSeelavantula/career-compass/store/badger"
	"github.com/ShreekarSeelavantula/career-compass/store/postgres"
)

const snapshotFile = "career-compass.gob"

func openBackend(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (store.Backend, error) {
	switch cfg.Backend {
	case config.StorageMemory:
		if cfg.DataDir == "" {
			return store.NewMemoryBackend(), nil
		}
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		return store.OpenMemoryBackend(filepath.Join(cfg.DataDir, snapshotFile))
	case config.StorageBadger:
		return badger.Open(cfg.DataDir, false, log.Named("badger"))
	case config.StoragePostgres:
		return postgres.Connect(ctx, cfg.PostgresURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func newEmbedder(cfg *config.AppConfig, log *zap.Logger) (embedding.Embedder, error) {
	switch cfg.Embedding.Provider {
	case config.EmbeddingProviderHash:
		return embedding.NewHashEmbedder(cfg.Ranking.EmbeddingDimension), nil
	case config.EmbeddingProviderOpenAI:
		return embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
			Host:      cfg.Embedding.Host,
			Model:     cfg.Embedding.Model,
			Token:     cfg.Embedding.Token,
			Dimension: cfg.Ranking.EmbeddingDimension,
			BatchSize: cfg.Embedding.BatchSize,
		}, log.Named("embedding"))
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

// buildMatching assembles the matching service. The returned cleanup releases
// the embedding pool and closes the backend.
func buildMatching(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*matching.Service, func(), error) {
	ranker, err := ranking.NewService(cfg.Ranking)
	if err != nil {
		return nil, nil, err
	}

	embedder, err := newEmbedder(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	batcher, err := embedding.NewBatcher(embedder, embedding.WithPoolSize(cfg.Embedding.PoolSize))
	if err != nil {
		return nil, nil, fmt.Errorf("creating embedding pool: %w", err)
	}

	backend, err := openBackend(ctx, cfg.Storage, log)
	if err != nil {
		batcher.Release()
		return nil, nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}
	cleanup := func() {
		batcher.Release()
		if err := backend.Close(); err != nil {
			log.Error("closing storage", zap.Error(err))
		}
	}

	svc, err := matching.NewService(store.NewStores(backend), embedder, ranker,
		matching.WithLogger(log.Named("matching")),
		matching.WithConcurrency(cfg.Matching.Concurrency),
		matching.WithTimeout(cfg.Matching.Timeout),
		matching.WithRecommendationLimit(cfg.Matching.RecommendationLimit),
		matching.WithBatcher(batcher),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	if _, err := svc.RebuildCorpus(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("loading resume corpus: %w", err)
	}
	return svc, cleanup, nil
}

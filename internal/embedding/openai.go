package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// OpenAIConfig configures an OpenAI-compatible embedding endpoint.
type OpenAIConfig struct {
	Host      string // base URL, e.g. http://localhost:11434/v1
	Model     string
	Token     string // "none" for local services without auth
	Dimension int
	BatchSize int
}

// OpenAIEmbedder calls an OpenAI-compatible embeddings API through langchaingo.
type OpenAIEmbedder struct {
	embedder embeddings.Embedder
	dim      int
	logger   *zap.Logger
}

// NewOpenAIEmbedder builds the langchaingo client and wraps it.
func NewOpenAIEmbedder(cfg OpenAIConfig, logger *zap.Logger) (*OpenAIEmbedder, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("embedding host is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("embedding model is required")
	}
	token := cfg.Token
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.Host),
		openai.WithToken(token),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating embedding client: %w", err)
	}

	opts := []embeddings.Option{embeddings.WithStripNewLines(true)}
	if cfg.BatchSize > 0 {
		opts = append(opts, embeddings.WithBatchSize(cfg.BatchSize))
	}
	embedder, err := embeddings.NewEmbedder(client, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	return NewOpenAIEmbedderFrom(embedder, cfg.Dimension, logger), nil
}

// NewOpenAIEmbedderFrom wraps an existing langchaingo embedder.
func NewOpenAIEmbedderFrom(embedder embeddings.Embedder, dim int, logger *zap.Logger) *OpenAIEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIEmbedder{
		embedder: embedder,
		dim:      dim,
		logger:   logger.With(zap.String("component", "openai-embedder")),
	}
}

func (e *OpenAIEmbedder) Dimension() int {
	return e.dim
}

// EmbedText embeds a single text. Blank text short-circuits to the zero vector.
func (e *OpenAIEmbedder) EmbedText(ctx context.Context, text string) (Vector, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts sends the non-blank texts in one request and fills blank ones with zero vectors.
func (e *OpenAIEmbedder) EmbedTexts(ctx context.Context, texts []string) ([]Vector, error) {
	vectors := make([]Vector, len(texts))

	var (
		pending []string
		slots   []int
	)
	for i, text := range texts {
		cleaned := Preprocess(text)
		if strings.TrimSpace(cleaned) == "" {
			vectors[i] = Zero(e.dim)
			continue
		}
		pending = append(pending, cleaned)
		slots = append(slots, i)
	}
	if len(pending) == 0 {
		return vectors, nil
	}

	e.logger.Debug("generating embeddings", zap.Int("count", len(pending)))
	raw, err := e.embedder.EmbedDocuments(ctx, pending)
	if err != nil {
		e.logger.Error("failed to generate embeddings", zap.Int("count", len(pending)), zap.Error(err))
		return nil, fmt.Errorf("embedding %d texts: %w", len(pending), err)
	}
	if len(raw) != len(pending) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(raw), len(pending))
	}

	for j, values := range raw {
		vector := make(Vector, len(values))
		for k, v := range values {
			vector[k] = float64(v)
		}
		if err := CheckDimension(vector, e.dim); err != nil {
			return nil, err
		}
		normalize(vector)
		vectors[slots[j]] = vector
	}
	return vectors, nil
}

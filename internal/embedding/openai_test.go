package embedding

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbeddings satisfies langchaingo's embeddings.Embedder.
type stubEmbeddings struct {
	dim      int
	received [][]string
	err      error
}

func (s *stubEmbeddings) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	s.received = append(s.received, texts)
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, s.dim)
		v[len(text)%s.dim] = 2
		out[i] = v
	}
	return out, nil
}

func (s *stubEmbeddings) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func TestOpenAIEmbedder_SkipsBlankTexts(t *testing.T) {
	stub := &stubEmbeddings{dim: 8}
	embedder := NewOpenAIEmbedderFrom(stub, 8, nil)

	vectors, err := embedder.EmbedTexts(context.Background(), []string{"golang", "  ", "rust  lang"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	require.Len(t, stub.received, 1)
	assert.Equal(t, []string{"golang", "rust lang"}, stub.received[0])

	assert.True(t, IsZero(vectors[1]))
	assert.InDelta(t, 1.0, Norm(vectors[0]), tolerance)
	assert.InDelta(t, 1.0, Norm(vectors[2]), tolerance)
}

func TestOpenAIEmbedder_AllBlankMakesNoCall(t *testing.T) {
	stub := &stubEmbeddings{dim: 8}
	embedder := NewOpenAIEmbedderFrom(stub, 8, nil)

	vector, err := embedder.EmbedText(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, vector, 8)
	assert.Empty(t, stub.received)
}

func TestOpenAIEmbedder_DimensionMismatch(t *testing.T) {
	stub := &stubEmbeddings{dim: 16}
	embedder := NewOpenAIEmbedderFrom(stub, DefaultDimension, nil)

	_, err := embedder.EmbedText(context.Background(), "golang")
	assert.ErrorIs(t, err, apperrors.ErrDimensionMismatch)
}

func TestOpenAIEmbedder_BackendError(t *testing.T) {
	stub := &stubEmbeddings{dim: 8, err: errors.New("connection refused")}
	embedder := NewOpenAIEmbedderFrom(stub, 8, nil)

	_, err := embedder.EmbedText(context.Background(), "golang")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewOpenAIEmbedder_RequiresHostAndModel(t *testing.T) {
	_, err := NewOpenAIEmbedder(OpenAIConfig{Model: "m"}, nil)
	assert.Error(t, err)

	_, err = NewOpenAIEmbedder(OpenAIConfig{Host: "http://localhost:1234/v1"}, nil)
	assert.Error(t, err)
}

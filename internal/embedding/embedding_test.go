package embedding

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestHashEmbedder_BlankTextIsZeroVector(t *testing.T) {
	embedder := NewHashEmbedder(DefaultDimension)

	for _, text := range []string{"", "   ", "\n\t"} {
		vector, err := embedder.EmbedText(context.Background(), text)
		require.NoError(t, err)
		assert.Len(t, vector, DefaultDimension)
		assert.True(t, IsZero(vector), "expected zero vector for %q", text)
	}
}

func TestHashEmbedder_Deterministic(t *testing.T) {
	embedder := NewHashEmbedder(DefaultDimension)
	text := "Backend engineer experienced with Go, PostgreSQL and Kubernetes"

	first, err := embedder.EmbedText(context.Background(), text)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := embedder.EmbedText(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	other := NewHashEmbedder(DefaultDimension)
	fromOther, err := other.EmbedText(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, first, fromOther)
}

func TestHashEmbedder_UnitNorm(t *testing.T) {
	embedder := NewHashEmbedder(64)
	vector, err := embedder.EmbedText(context.Background(), "react node typescript graphql")
	require.NoError(t, err)
	assert.Len(t, vector, 64)
	assert.InDelta(t, 1.0, Norm(vector), tolerance)
}

func TestHashEmbedder_CaseAndWhitespaceInsensitive(t *testing.T) {
	embedder := NewHashEmbedder(DefaultDimension)
	a, _ := embedder.EmbedText(context.Background(), "Senior   GO Developer")
	b, _ := embedder.EmbedText(context.Background(), "senior go developer")
	assert.Equal(t, a, b)
}

func TestHashEmbedder_OnlyLeadingWordsCount(t *testing.T) {
	embedder := NewHashEmbedder(DefaultDimension)
	head := strings.Repeat("golang ", 50)

	a, _ := embedder.EmbedText(context.Background(), head+"python")
	b, _ := embedder.EmbedText(context.Background(), head+"haskell erlang")
	assert.Equal(t, a, b)
}

func TestHashEmbedder_DefaultDimension(t *testing.T) {
	assert.Equal(t, DefaultDimension, NewHashEmbedder(0).Dimension())
	assert.Equal(t, 16, NewHashEmbedder(16).Dimension())
}

func TestHashEmbedder_EmbedTextsRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHashEmbedder(8).EmbedTexts(ctx, []string{"one two three"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{"identical", Vector{1, 2, 3}, Vector{1, 2, 3}, 1},
		{"opposite", Vector{1, 0}, Vector{-1, 0}, -1},
		{"orthogonal", Vector{1, 0}, Vector{0, 1}, 0},
		{"scaled", Vector{1, 1}, Vector{3, 3}, 1},
		{"zero norm left", Vector{0, 0}, Vector{1, 1}, 0},
		{"zero norm both", Vector{0, 0}, Vector{0, 0}, 0},
		{"empty vectors", Vector{}, Vector{}, 0},
		{"huge identical", Vector{1e200, 1e200, 1e200}, Vector{1e200, 1e200, 1e200}, 1},
		{"huge opposite", Vector{1e300, -1e300}, Vector{-1e300, 1e300}, -1},
		{"tiny identical", Vector{1e-200, 1e-200}, Vector{1e-200, 1e-200}, 1},
		{"denormal identical", Vector{5e-324, 0}, Vector{5e-324, 0}, 1},
		{"mixed magnitudes", Vector{1e-200, 0}, Vector{1e200, 0}, 1},
		{"infinite component", Vector{math.Inf(1), 1}, Vector{1, 1}, 0},
		{"nan component", Vector{math.NaN(), 1}, Vector{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Similarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tolerance)
			assert.GreaterOrEqual(t, got, -1.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestNorm_ExtremeMagnitudes(t *testing.T) {
	assert.InDelta(t, 5e200, Norm(Vector{3e200, 4e200}), 1e188)
	assert.InDelta(t, 5e-200, Norm(Vector{3e-200, 4e-200}), 1e-212)
	assert.Equal(t, 0.0, Norm(Vector{0, 0}))
}

func TestSimilarity_Symmetric(t *testing.T) {
	embedder := NewHashEmbedder(DefaultDimension)
	a, _ := embedder.EmbedText(context.Background(), "python machine learning pandas")
	b, _ := embedder.EmbedText(context.Background(), "machine learning engineer with pytorch")

	ab, err := Similarity(a, b)
	require.NoError(t, err)
	ba, err := Similarity(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestSimilarity_DimensionMismatch(t *testing.T) {
	_, err := Similarity(make(Vector, 384), make(Vector, 300))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDimensionMismatch))

	var dimErr *apperrors.DimensionMismatchError
	require.ErrorAs(t, err, &dimErr)
	assert.Equal(t, 384, dimErr.Expected)
	assert.Equal(t, 300, dimErr.Actual)
}

func TestPreprocess(t *testing.T) {
	assert.Equal(t, "a b c", Preprocess("  a \n b\t\tc  "))
	assert.Equal(t, "", Preprocess("   "))

	long := strings.TrimSpace(strings.Repeat("word ", 600))
	assert.Len(t, strings.Fields(Preprocess(long)), 500)
}

func TestBatcher_PreservesOrder(t *testing.T) {
	embedder := NewHashEmbedder(32)
	batcher, err := NewBatcher(embedder, WithPoolSize(4))
	require.NoError(t, err)
	defer batcher.Release()

	texts := []string{"golang", "", "rust systems", "python data", "java spring", "kotlin android"}
	vectors, err := batcher.EmbedBatch(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, len(texts))

	for i, text := range texts {
		want, _ := embedder.EmbedText(context.Background(), text)
		assert.Equal(t, want, vectors[i], "vector %d out of order", i)
	}
}

func TestBatcher_Empty(t *testing.T) {
	batcher, err := NewBatcher(NewHashEmbedder(8))
	require.NoError(t, err)
	defer batcher.Release()

	vectors, err := batcher.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}

type failingEmbedder struct {
	calls atomic.Int32
}

func (f *failingEmbedder) EmbedText(_ context.Context, text string) (Vector, error) {
	f.calls.Add(1)
	if text == "bad" {
		return nil, errors.New("backend unavailable")
	}
	return Zero(4), nil
}

func (f *failingEmbedder) EmbedTexts(ctx context.Context, texts []string) ([]Vector, error) {
	out := make([]Vector, len(texts))
	for i, text := range texts {
		v, err := f.EmbedText(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *failingEmbedder) Dimension() int { return 4 }

func TestBatcher_PropagatesError(t *testing.T) {
	batcher, err := NewBatcher(&failingEmbedder{}, WithPoolSize(2))
	require.NoError(t, err)
	defer batcher.Release()

	_, err = batcher.EmbedBatch(context.Background(), []string{"ok", "bad", "ok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend unavailable")
}

func TestBatcher_CancelledContext(t *testing.T) {
	batcher, err := NewBatcher(NewHashEmbedder(8))
	require.NoError(t, err)
	defer batcher.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = batcher.EmbedBatch(ctx, []string{"one", "two"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMostSimilar(t *testing.T) {
	query := Vector{1, 0}
	candidates := []Vector{
		{0, 1},
		{1, 0},
		{1, 1},
		{2, 0},
	}

	matches, err := MostSimilar(query, candidates, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, 1, matches[0].Index)
	assert.Equal(t, 3, matches[1].Index)
	assert.Equal(t, 2, matches[2].Index)
	assert.InDelta(t, 1/math.Sqrt2, matches[2].Similarity, tolerance)

	all, err := MostSimilar(query, candidates, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = MostSimilar(query, []Vector{{1, 2, 3}}, 1)
	assert.ErrorIs(t, err, apperrors.ErrDimensionMismatch)
}

func TestSimilarityMatrix(t *testing.T) {
	matrix, err := SimilarityMatrix([]Vector{{1, 0}, {0, 1}, {0, 0}})
	require.NoError(t, err)

	assert.InDelta(t, 1, matrix[0][0], tolerance)
	assert.InDelta(t, 0, matrix[0][1], tolerance)
	assert.Equal(t, matrix[0][1], matrix[1][0])
	assert.Equal(t, 0.0, matrix[2][2])
}

func TestCluster(t *testing.T) {
	vectors := []Vector{
		{1, 0},
		{0, 1},
		{0.99, 0.1},
		{0.1, 0.99},
		{-1, 0},
	}

	clusters, err := Cluster(vectors, 0.7)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 2}, {1, 3}, {4}}, clusters)
}

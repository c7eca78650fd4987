// Package embedding turns text into dense vectors and compares them.
//
// HashEmbedder is a deterministic offline placeholder; OpenAIEmbedder calls an
// OpenAI-compatible endpoint. Both return L2-normalized vectors.
package embedding

import (
	"context"
	"math"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
)

// DefaultDimension is the vector length shared by producers and consumers.
const DefaultDimension = 384

// Vector is a fixed-length embedding.
type Vector []float64

// Embedder produces vectors of a single, fixed dimension.
type Embedder interface {
	// EmbedText returns the embedding of text. Blank text yields the zero vector.
	EmbedText(ctx context.Context, text string) (Vector, error)
	// EmbedTexts embeds each text independently and preserves order.
	EmbedTexts(ctx context.Context, texts []string) ([]Vector, error)
	// Dimension is the length of every vector this embedder returns.
	Dimension() int
}

// Zero returns the zero vector of the given dimension.
func Zero(dim int) Vector {
	return make(Vector, dim)
}

// Norm returns the L2 norm of v. Components are scaled by the largest
// magnitude first so very large or very small vectors neither overflow nor
// underflow.
func Norm(v Vector) float64 {
	scale := maxAbs(v)
	if !usableScale(scale) {
		return scale
	}
	var sum float64
	for _, x := range v {
		x /= scale
		sum += x * x
	}
	return scale * math.Sqrt(sum)
}

func maxAbs(v Vector) float64 {
	var m float64
	for _, x := range v {
		if math.IsNaN(x) {
			return x
		}
		if ax := math.Abs(x); ax > m {
			m = ax
		}
	}
	return m
}

// IsZero reports whether every component of v is zero.
func IsZero(v Vector) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Similarity returns the cosine similarity of a and b, clamped to [-1, 1].
// Vectors of different length are a DimensionMismatchError; a zero-norm
// or non-finite vector on either side yields 0.
func Similarity(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, apperrors.NewDimensionMismatchError(len(a), len(b))
	}

	// Cosine is scale invariant, so each side is divided by its largest
	// magnitude before accumulating.
	scaleA, scaleB := maxAbs(a), maxAbs(b)
	if !usableScale(scaleA) || !usableScale(scaleB) {
		return 0, nil
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := a[i]/scaleA, b[i]/scaleB
		dot += x * y
		normA += x * x
		normB += y * y
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) {
		return 0, nil
	}
	return math.Max(-1, math.Min(1, sim)), nil
}

func usableScale(scale float64) bool {
	return scale > 0 && !math.IsInf(scale, 0) && !math.IsNaN(scale)
}

// CheckDimension returns a DimensionMismatchError when v is not of length dim.
func CheckDimension(v Vector, dim int) error {
	if len(v) != dim {
		return apperrors.NewDimensionMismatchError(dim, len(v))
	}
	return nil
}

func normalize(v Vector) {
	norm := Norm(v)
	if !usableScale(norm) {
		return
	}
	for i := range v {
		v[i] /= norm
	}
}

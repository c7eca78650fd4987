package embedding

import (
	"context"
	"hash/fnv"
	"strings"
)

const (
	// maxPreprocessWords bounds the text kept before embedding.
	maxPreprocessWords = 500
	// maxHashedWords is how many leading words contribute to a hash vector.
	maxHashedWords = 50
)

// HashEmbedder is a deterministic bag-of-words placeholder. Each of the first
// words is hashed with FNV-1a into a bucket, buckets accumulate 1/len(words)
// and the result is scaled to unit length. Identical input always produces a
// bit-identical vector.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder creates a HashEmbedder. Non-positive dimensions fall back to DefaultDimension.
func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashEmbedder{dim: dim}
}

func (h *HashEmbedder) Dimension() int {
	return h.dim
}

// EmbedText never fails; the context is accepted for interface compatibility.
func (h *HashEmbedder) EmbedText(_ context.Context, text string) (Vector, error) {
	return h.embed(text), nil
}

func (h *HashEmbedder) EmbedTexts(ctx context.Context, texts []string) ([]Vector, error) {
	vectors := make([]Vector, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors[i] = h.embed(text)
	}
	return vectors, nil
}

func (h *HashEmbedder) embed(text string) Vector {
	vector := Zero(h.dim)

	words := strings.Fields(strings.ToLower(Preprocess(text)))
	if len(words) == 0 {
		return vector
	}
	if len(words) > maxHashedWords {
		words = words[:maxHashedWords]
	}

	weight := 1.0 / float64(len(words))
	for _, word := range words {
		hasher := fnv.New32a()
		hasher.Write([]byte(word))
		vector[int(hasher.Sum32()%uint32(h.dim))] += weight
	}

	normalize(vector)
	return vector
}

// Preprocess trims text, collapses whitespace runs and keeps at most the first 500 words.
func Preprocess(text string) string {
	words := strings.Fields(text)
	if len(words) > maxPreprocessWords {
		words = words[:maxPreprocessWords]
	}
	return strings.Join(words, " ")
}

package embedding

import (
	"sort"
)

// Match is one result of MostSimilar.
type Match struct {
	Index      int     `json:"index"`
	Similarity float64 `json:"similarity"`
}

// MostSimilar returns the k candidates closest to query, highest similarity
// first and lower index first on ties. k <= 0 returns every candidate.
func MostSimilar(query Vector, candidates []Vector, k int) ([]Match, error) {
	matches := make([]Match, 0, len(candidates))
	for i, candidate := range candidates {
		sim, err := Similarity(query, candidate)
		if err != nil {
			return nil, err
		}
		matches = append(matches, Match{Index: i, Similarity: sim})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if k > 0 && k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

// SimilarityMatrix returns the pairwise similarities of vectors.
// The diagonal is 1 for non-zero vectors and 0 for zero vectors.
func SimilarityMatrix(vectors []Vector) ([][]float64, error) {
	n := len(vectors)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sim, err := Similarity(vectors[i], vectors[j])
			if err != nil {
				return nil, err
			}
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}
	return matrix, nil
}

// Cluster groups vectors greedily: each unassigned vector starts a cluster and
// pulls in every later unassigned vector whose similarity to it is at least
// threshold. Clusters are lists of indices in ascending order.
func Cluster(vectors []Vector, threshold float64) ([][]int, error) {
	assigned := make([]bool, len(vectors))
	var clusters [][]int

	for i := range vectors {
		if assigned[i] {
			continue
		}
		cluster := []int{i}
		assigned[i] = true

		for j := i + 1; j < len(vectors); j++ {
			if assigned[j] {
				continue
			}
			sim, err := Similarity(vectors[i], vectors[j])
			if err != nil {
				return nil, err
			}
			if sim >= threshold {
				cluster = append(cluster, j)
				assigned[j] = true
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters, nil
}

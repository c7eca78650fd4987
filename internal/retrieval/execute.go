package retrieval

import (
	"sort"
	"strings"

	"github.com/ShreekarSeelavantula/career-compass/internal/embedding"
	"github.com/ShreekarSeelavantula/career-compass/internal/tokenizer"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

// Hit is one matching document and its relevance.
// Score is the best boosted field match, the vector similarity, or their sum.
type Hit struct {
	ID    string         `json:"id"`
	Doc   model.Document `json:"-"`
	Score float64        `json:"score"`
}

// Execute evaluates q against docs. Documents lacking the vector field are
// skipped by a Nearest clause; a vector of the wrong length is an error.
func Execute(docs []model.Document, q *Query) ([]Hit, error) {
	if q == nil {
		q = NewQuery()
	}

	var queryTerms []string
	if q.TextMatch != nil {
		queryTerms = tokenizer.UniqueTerms(tokenizer.Tokenize(q.TextMatch.Text))
	}

	hits := make([]Hit, 0, len(docs))
	for _, doc := range docs {
		if !docMatchesFilters(doc, q.Filters) {
			continue
		}

		score := 0.0
		if q.TextMatch != nil {
			relevance := matchRelevance(doc, q.TextMatch.Fields, queryTerms)
			if relevance <= 0 {
				continue
			}
			score += relevance
		}

		if q.Nearest != nil {
			vector, ok := doc.Vector(q.Nearest.Field)
			if !ok {
				continue
			}
			sim, err := embedding.Similarity(q.Nearest.Vector, vector)
			if err != nil {
				return nil, err
			}
			if sim < q.Nearest.MinSimilarity {
				continue
			}
			score += sim
		}

		id, _ := doc.GetDocumentID()
		hits = append(hits, Hit{ID: id, Doc: doc, Score: score})
	}

	sortHits(hits, effectiveSort(q))
	if q.Size > 0 && len(hits) > q.Size {
		hits = hits[:q.Size]
	}
	return hits, nil
}

// effectiveSort defaults to relevance order when the query is scored.
func effectiveSort(q *Query) []SortField {
	if len(q.Sort) > 0 {
		return q.Sort
	}
	if q.TextMatch != nil || q.Nearest != nil {
		return []SortField{{Field: ScoreField, Order: "desc"}}
	}
	return nil
}

// matchRelevance is a best-fields score: for each field, the fraction of
// query terms found in it times the field boost; the best field wins.
func matchRelevance(doc model.Document, fields []FieldBoost, queryTerms []string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}

	best := 0.0
	for _, field := range fields {
		terms := fieldTerms(doc[field.Field])
		if len(terms) == 0 {
			continue
		}
		found := 0
		for _, term := range queryTerms {
			if _, ok := terms[term]; ok {
				found++
			}
		}
		boost := field.Boost
		if boost <= 0 {
			boost = 1
		}
		if score := boost * float64(found) / float64(len(queryTerms)); score > best {
			best = score
		}
	}
	return best
}

// fieldTerms tokenizes a string or list field into a term set.
func fieldTerms(val interface{}) map[string]struct{} {
	var text string
	switch v := val.(type) {
	case string:
		text = v
	default:
		items, ok := asList(val)
		if !ok {
			return nil
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if s, isStr := item.(string); isStr {
				parts = append(parts, s)
			}
		}
		text = strings.Join(parts, " ")
	}

	terms := make(map[string]struct{})
	for _, token := range tokenizer.Tokenize(text) {
		terms[token] = struct{}{}
	}
	return terms
}

// sortHits orders hits by the sort keys, then by id for a stable tie-break.
func sortHits(hits []Hit, keys []SortField) {
	sort.SliceStable(hits, func(i, j int) bool {
		for _, key := range keys {
			cmp := compareHits(hits[i], hits[j], key.Field)
			if cmp == 0 {
				continue
			}
			if key.Order == "asc" {
				return cmp < 0
			}
			return cmp > 0
		}
		return hits[i].ID < hits[j].ID
	})
}

func compareHits(a, b Hit, field string) int {
	if field == ScoreField {
		switch {
		case a.Score < b.Score:
			return -1
		case a.Score > b.Score:
			return 1
		}
		return 0
	}

	av, aOk := a.Doc[field]
	bv, bOk := b.Doc[field]
	switch {
	case !aOk && !bOk:
		return 0
	case !aOk:
		return -1
	case !bOk:
		return 1
	}
	cmp, _ := compareOrdered(av, bv)
	return cmp
}

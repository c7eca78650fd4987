// Package retrieval builds and evaluates queries over stored documents.
//
// A Query is a conjunction of filters plus an optional boosted multi-field
// text match and an optional nearest-neighbour vector clause. Any store that
// can enumerate model.Documents can answer it with Execute.
package retrieval

import (
	"sort"
	"strings"
)

// Filter operators.
const (
	OpEqual         = "eq"
	OpNotEqual      = "ne"
	OpGreater       = "gt"
	OpGreaterEqual  = "gte"
	OpLess          = "lt"
	OpLessEqual     = "lte"
	OpContains      = "contains"
	OpContainsAnyOf = "contains_any_of"
)

// ScoreField sorts by match relevance or vector similarity.
const ScoreField = "_score"

// Filter restricts results to documents whose field satisfies the operator.
type Filter struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

// FieldBoost is a searchable field and its relevance multiplier.
type FieldBoost struct {
	Field string  `json:"field"`
	Boost float64 `json:"boost"`
}

// MultiMatch matches free text against several fields and keeps the best field score.
type MultiMatch struct {
	Text   string       `json:"text"`
	Fields []FieldBoost `json:"fields"`
}

// Nearest keeps documents whose vector field is similar enough to Vector.
type Nearest struct {
	Field         string    `json:"field"`
	Vector        []float64 `json:"vector"`
	MinSimilarity float64   `json:"min_similarity"`
}

// SortField orders results; Order is "asc" or "desc".
type SortField struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Query is a retrieval request. The zero value matches everything.
type Query struct {
	Filters   []Filter    `json:"filters,omitempty"`
	TextMatch *MultiMatch `json:"match,omitempty"`
	Nearest   *Nearest    `json:"nearest,omitempty"`
	Sort      []SortField `json:"sort,omitempty"`
	Size      int         `json:"size,omitempty"` // 0 means unlimited
}

// NewQuery starts an empty query.
func NewQuery() *Query {
	return &Query{}
}

// Term requires field to equal value (or contain it, for list fields).
func (q *Query) Term(field string, value interface{}) *Query {
	q.Filters = append(q.Filters, Filter{Field: field, Operator: OpEqual, Value: value})
	return q
}

// Terms requires field to match at least one of values.
func (q *Query) Terms(field string, values ...string) *Query {
	items := make([]interface{}, len(values))
	for i, v := range values {
		items[i] = v
	}
	q.Filters = append(q.Filters, Filter{Field: field, Operator: OpContainsAnyOf, Value: items})
	return q
}

// Where adds an arbitrary filter.
func (q *Query) Where(field, operator string, value interface{}) *Query {
	q.Filters = append(q.Filters, Filter{Field: field, Operator: operator, Value: value})
	return q
}

// Range bounds a numeric or time field; nil bounds are open.
func (q *Query) Range(field string, gte, lte interface{}) *Query {
	if gte != nil {
		q.Filters = append(q.Filters, Filter{Field: field, Operator: OpGreaterEqual, Value: gte})
	}
	if lte != nil {
		q.Filters = append(q.Filters, Filter{Field: field, Operator: OpLessEqual, Value: lte})
	}
	return q
}

// Match adds a boosted multi-field text clause. Blank text is ignored.
func (q *Query) Match(text string, fields ...FieldBoost) *Query {
	if strings.TrimSpace(text) == "" {
		return q
	}
	q.TextMatch = &MultiMatch{Text: text, Fields: fields}
	return q
}

// Near adds a vector similarity clause.
func (q *Query) Near(field string, vector []float64, minSimilarity float64) *Query {
	q.Nearest = &Nearest{Field: field, Vector: vector, MinSimilarity: minSimilarity}
	return q
}

// SortBy appends a sort key.
func (q *Query) SortBy(field, order string) *Query {
	q.Sort = append(q.Sort, SortField{Field: field, Order: order})
	return q
}

// Limit caps the number of results.
func (q *Query) Limit(size int) *Query {
	q.Size = size
	return q
}

// Boost is shorthand for FieldBoost{field, boost}.
func Boost(field string, boost float64) FieldBoost {
	return FieldBoost{Field: field, Boost: boost}
}

// FromFilterParams converts suffix-style filter keys such as
// "experience_years_gte" or "skills_contains_any_of" into filters.
func FromFilterParams(params map[string]interface{}) []Filter {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	filters := make([]Filter, 0, len(params))
	for _, key := range keys {
		field, operator := parseFilterKey(key)
		filters = append(filters, Filter{Field: field, Operator: operator, Value: params[key]})
	}
	return filters
}

// parseFilterKey parses a filter key to extract field name and operator
func parseFilterKey(key string) (string, string) {
	// Longer suffixes first.
	knownOperators := []string{
		OpContainsAnyOf,
		OpContains,
		OpGreaterEqual,
		OpLessEqual,
		OpGreater,
		OpLess,
		OpNotEqual,
		OpEqual,
	}

	for _, op := range knownOperators {
		if strings.HasSuffix(key, "_"+op) {
			return strings.TrimSuffix(key, "_"+op), op
		}
	}
	return key, OpEqual
}

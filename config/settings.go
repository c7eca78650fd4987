// Package config provides configuration structures for the matching engine.
// It defines the ranking settings honored by the scoring core and the
// application-level configuration loaded at process start.
package config

import (
	"fmt"
	"math"
)

// IDF modes understood by the lexical scorer.
const (
	// IDFModePair scores every matched term with ln(2/(1+1)) computed over the
	// single candidate/job pair, which is always zero.
	IDFModePair = "pair"
	// IDFModeCorpus uses ln(N/df) from document frequencies across stored candidates.
	IDFModeCorpus = "corpus"
)

// Defaults for RankingSettings.
const (
	DefaultLexicalWeight      = 0.4
	DefaultSemanticWeight     = 0.5
	DefaultRuleWeight         = 0.1
	DefaultEmbeddingDimension = 384
	DefaultBM25K1             = 1.5
	DefaultBM25B              = 0.75
	DefaultMinTokenLength     = 2

	// WeightEpsilon is the tolerance used when checking that weights sum to 1.
	WeightEpsilon = 1e-9
)

// BM25Settings holds the term saturation and length normalization parameters.
type BM25Settings struct {
	K1 float64 `json:"k1" mapstructure:"k1"` // Term frequency saturation (default 1.5)
	B  float64 `json:"b" mapstructure:"b"`   // Document length normalization (default 0.75)
}

// RankingSettings contains every option recognised by the hybrid ranking core.
//
// Weights are pointers so that an explicit zero (for example disabling the
// lexical signal entirely) can be told apart from "not configured".
type RankingSettings struct {
	LexicalWeight      *float64     `json:"lexical_weight,omitempty" mapstructure:"lexical_weight"`
	SemanticWeight     *float64     `json:"semantic_weight,omitempty" mapstructure:"semantic_weight"`
	RuleWeight         *float64     `json:"rule_weight,omitempty" mapstructure:"rule_weight"`
	EmbeddingDimension int          `json:"embedding_dimension" mapstructure:"embedding_dimension"`
	BM25               BM25Settings `json:"bm25" mapstructure:"bm25"`
	MinTokenLength     *int         `json:"min_token_length,omitempty" mapstructure:"min_token_length"`
	IDFMode            string       `json:"idf_mode" mapstructure:"idf_mode"` // "pair" (default) or "corpus"
}

// DefaultRankingSettings returns settings with every default applied.
func DefaultRankingSettings() RankingSettings {
	var settings RankingSettings
	settings.ApplyDefaults()
	return settings
}

// ApplyDefaults fills in every option left unset.
func (settings *RankingSettings) ApplyDefaults() {
	if settings.LexicalWeight == nil && settings.SemanticWeight == nil && settings.RuleWeight == nil {
		settings.LexicalWeight = float64Ptr(DefaultLexicalWeight)
		settings.SemanticWeight = float64Ptr(DefaultSemanticWeight)
		settings.RuleWeight = float64Ptr(DefaultRuleWeight)
	}
	// A partially specified weight set is left as-is so Validate can reject it.
	if settings.EmbeddingDimension == 0 {
		settings.EmbeddingDimension = DefaultEmbeddingDimension
	}
	if settings.BM25.K1 == 0 {
		settings.BM25.K1 = DefaultBM25K1
	}
	if settings.BM25.B == 0 {
		settings.BM25.B = DefaultBM25B
	}
	if settings.MinTokenLength == nil {
		settings.MinTokenLength = intPtr(DefaultMinTokenLength)
	}
	if settings.IDFMode == "" {
		settings.IDFMode = IDFModePair
	}
}

// Weights returns the three signal weights, treating unset values as zero.
func (settings RankingSettings) Weights() (lexical, semantic, rule float64) {
	return deref(settings.LexicalWeight), deref(settings.SemanticWeight), deref(settings.RuleWeight)
}

// Validate returns one message per invalid option. An empty result means the
// settings can be used to build a ranking service.
func (settings *RankingSettings) Validate() []string {
	var problems []string

	weights := []struct {
		name  string
		value *float64
	}{
		{"lexical_weight", settings.LexicalWeight},
		{"semantic_weight", settings.SemanticWeight},
		{"rule_weight", settings.RuleWeight},
	}
	sum := 0.0
	for _, w := range weights {
		if w.value == nil {
			problems = append(problems, fmt.Sprintf("%s is required when any weight is set", w.name))
			continue
		}
		if math.IsNaN(*w.value) || *w.value < 0 {
			problems = append(problems, fmt.Sprintf("%s must be a non-negative number, got %v", w.name, *w.value))
		}
		sum += *w.value
	}
	if len(problems) == 0 && math.Abs(sum-1.0) > WeightEpsilon {
		problems = append(problems, fmt.Sprintf("weights must sum to 1.0, got %.6f", sum))
	}

	if settings.EmbeddingDimension <= 0 {
		problems = append(problems, fmt.Sprintf("embedding_dimension must be positive, got %d", settings.EmbeddingDimension))
	}
	if !(settings.BM25.K1 > 0) {
		problems = append(problems, fmt.Sprintf("bm25.k1 must be positive, got %v", settings.BM25.K1))
	}
	if !(settings.BM25.B > 0) {
		problems = append(problems, fmt.Sprintf("bm25.b must be positive, got %v", settings.BM25.B))
	}
	if settings.MinTokenLength != nil && *settings.MinTokenLength < 0 {
		problems = append(problems, fmt.Sprintf("min_token_length must be non-negative, got %d", *settings.MinTokenLength))
	}
	if settings.IDFMode != IDFModePair && settings.IDFMode != IDFModeCorpus {
		problems = append(problems, "Invalid idf_mode '"+settings.IDFMode+"' (must be 'pair' or 'corpus')")
	}

	return problems
}

// Weight returns a pointer to v, for building RankingSettings literals.
func Weight(v float64) *float64 {
	return float64Ptr(v)
}

// TokenLength returns a pointer to v, for building RankingSettings literals.
func TokenLength(v int) *int {
	return intPtr(v)
}

func float64Ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// Package ranking combines lexical, semantic and rule-based signals into a
// single bounded match score.
//
// Everything here is pure: a Service holds only immutable configuration and
// may be shared by any number of goroutines.
package ranking

import (
	"math"
	"strings"

	"github.com/ShreekarSeelavantula/career-compass/config"
	"github.com/ShreekarSeelavantula/career-compass/internal/embedding"
	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

// ScoreInput is one candidate/job pair.
type ScoreInput struct {
	CandidateText      string
	CandidateEmbedding embedding.Vector
	JobText            string
	JobEmbedding       embedding.Vector
	CandidateSkills    []string
	JobSkills          []string
	CandidateExp       *int
	JobMinExp          *int
	SameLocation       bool
}

func (in ScoreInput) rules() RuleInput {
	return RuleInput{
		CandidateSkills: in.CandidateSkills,
		JobSkills:       in.JobSkills,
		CandidateExp:    in.CandidateExp,
		JobMinExp:       in.JobMinExp,
		SameLocation:    in.SameLocation,
	}
}

// Service is the hybrid ranking service.
type Service struct {
	settings       config.RankingSettings
	lexicalWeight  float64
	semanticWeight float64
	ruleWeight     float64
	bm25           *BM25Calculator
}

// NewService validates settings and builds a Service. Invalid settings
// return a *errors.ConfigurationError.
func NewService(settings config.RankingSettings) (*Service, error) {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, apperrors.NewConfigurationError("ranking", strings.Join(problems, "; "))
	}

	lexical, semantic, rule := settings.Weights()
	return &Service{
		settings:       settings,
		lexicalWeight:  lexical,
		semanticWeight: semantic,
		ruleWeight:     rule,
		bm25:           NewBM25Calculator(settings),
	}, nil
}

// WithCorpus returns a copy of the service whose lexical scorer reads
// document frequencies from stats. It only changes scores in corpus IDF mode.
func (s *Service) WithCorpus(stats CorpusStats) *Service {
	clone := *s
	clone.bm25 = s.bm25.withCorpus(stats)
	return &clone
}

// Settings returns the effective settings.
func (s *Service) Settings() config.RankingSettings {
	return s.settings
}

// EmbeddingDimension is the vector length the service expects.
func (s *Service) EmbeddingDimension() int {
	return s.settings.EmbeddingDimension
}

// LexicalScore exposes the BM25-style scorer.
func (s *Service) LexicalScore(candidateText, jobText string) float64 {
	return s.bm25.LexicalScore(candidateText, jobText)
}

// SemanticScore rescales cosine similarity from [-1, 1] to [0, 1].
func (s *Service) SemanticScore(candidate, job embedding.Vector) (float64, error) {
	sim, err := embedding.Similarity(candidate, job)
	if err != nil {
		return 0, err
	}
	return (sim + 1) / 2, nil
}

// Score computes every component and the weighted final score.
// A DimensionMismatchError from the embeddings is returned unchanged.
func (s *Service) Score(in ScoreInput) (model.ScoreComponents, error) {
	semantic, err := s.SemanticScore(in.CandidateEmbedding, in.JobEmbedding)
	if err != nil {
		return model.ScoreComponents{}, err
	}
	lexical := s.LexicalScore(in.CandidateText, in.JobText)
	rule := RuleBoost(in.rules())

	return model.ScoreComponents{
		BM25:      lexical,
		Semantic:  semantic,
		RuleBoost: rule,
		Final:     s.combine(lexical, semantic, rule),
	}, nil
}

func (s *Service) combine(lexical, semantic, rule float64) float64 {
	return clampUnit(s.lexicalWeight*lexical + s.semanticWeight*semantic + s.ruleWeight*rule)
}

// clampUnit bounds v to [0, 1]; NaN becomes 0.
func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// Explain scores the pair and describes how each component contributed.
func (s *Service) Explain(in ScoreInput) (model.ScoreExplanation, error) {
	scores, err := s.Score(in)
	if err != nil {
		return model.ScoreExplanation{}, err
	}

	return model.ScoreExplanation{
		FinalScore: scores.Final,
		Components: map[string]model.ComponentExplanation{
			"bm25": {
				Score:         scores.BM25,
				Weight:        s.lexicalWeight,
				WeightedScore: scores.BM25 * s.lexicalWeight,
				Description:   "Keyword matching between resume and job description",
			},
			"semantic": {
				Score:         scores.Semantic,
				Weight:        s.semanticWeight,
				WeightedScore: scores.Semantic * s.semanticWeight,
				Description:   "Semantic similarity based on meaning and context",
			},
			"rule_boost": {
				Score:         scores.RuleBoost,
				Weight:        s.ruleWeight,
				WeightedScore: scores.RuleBoost * s.ruleWeight,
				Description:   "Rule-based factors (skills, experience, location)",
			},
		},
		Factors: model.ExplanationFactors{
			SkillsMatch:     SkillScore(in.CandidateSkills, in.JobSkills),
			ExperienceMatch: ExperienceScore(in.CandidateExp, in.JobMinExp),
			LocationMatch:   in.SameLocation,
			MatchingSkills:  MatchingSkills(in.CandidateSkills, in.JobSkills),
			MissingSkills:   MissingSkills(in.CandidateSkills, in.JobSkills),
		},
	}, nil
}

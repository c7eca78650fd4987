package model

// ScoreComponents is the breakdown of a hybrid match score. Every field is in [0, 1].
type ScoreComponents struct {
	BM25      float64 `json:"bm25"`
	Semantic  float64 `json:"semantic"`
	RuleBoost float64 `json:"rule_boost"`
	Final     float64 `json:"final"`
}

// MatchScore is the final score as a percentage, as shown to users.
func (s ScoreComponents) MatchScore() float64 {
	return s.Final * 100
}

// ComponentExplanation describes one weighted signal.
type ComponentExplanation struct {
	Score         float64 `json:"score"`
	Weight        float64 `json:"weight"`
	WeightedScore float64 `json:"weighted_score"`
	Description   string  `json:"description"`
}

// ExplanationFactors are the structured inputs behind the rule boost.
type ExplanationFactors struct {
	SkillsMatch     float64  `json:"skills_match"`
	ExperienceMatch float64  `json:"experience_match"`
	LocationMatch   bool     `json:"location_match"`
	MatchingSkills  []string `json:"matching_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

// ScoreExplanation is a human-readable account of how a score was built.
type ScoreExplanation struct {
	FinalScore float64                         `json:"final_score"`
	Components map[string]ComponentExplanation `json:"components"` // keyed by bm25, semantic, rule_boost
	Factors    ExplanationFactors              `json:"factors"`
}

// RankedCandidate pairs a candidate with its score against one posting.
type RankedCandidate struct {
	Candidate  Candidate       `json:"candidate"`
	Scores     ScoreComponents `json:"scores"`
	MatchScore float64         `json:"match_score"`
}

// RankedJob pairs a posting with its score against one candidate.
// Scores is nil when the candidate could not be scored (no embedding yet).
type RankedJob struct {
	Job        JobPosting       `json:"job"`
	Scores     *ScoreComponents `json:"scores,omitempty"`
	MatchScore *float64         `json:"match_score,omitempty"`
}

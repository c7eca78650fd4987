package ranking

import (
	"math"
	"sort"
	"strings"
)

// Rule boost weights. They are fixed and sum to 1.
const (
	skillRuleWeight      = 0.6
	experienceRuleWeight = 0.3
	locationRuleWeight   = 0.1

	// neutralExperienceScore is used when either experience value is unknown.
	neutralExperienceScore = 0.5
	// idealExperienceBand is how many years above the minimum still score 1.0.
	idealExperienceBand = 2

	overqualifiedStep  = 0.05
	overqualifiedCap   = 0.3
	underqualifiedStep = 0.2
	underqualifiedCap  = 0.8
	sameLocationScore  = 1.0
	otherLocationScore = 0.8
)

// RuleInput is the structured side of a candidate/job pair.
type RuleInput struct {
	CandidateSkills []string
	JobSkills       []string
	CandidateExp    *int // years; nil when unknown
	JobMinExp       *int // years; nil when the posting sets no minimum
	SameLocation    bool
}

// RuleBoost combines skill overlap, experience fit and location into [0, 1].
func RuleBoost(in RuleInput) float64 {
	boost := skillRuleWeight*SkillScore(in.CandidateSkills, in.JobSkills) +
		experienceRuleWeight*ExperienceScore(in.CandidateExp, in.JobMinExp) +
		locationRuleWeight*LocationScore(in.SameLocation)
	return math.Max(0, math.Min(1, boost))
}

// SkillScore is the Jaccard similarity of the two skill sets.
// Both empty is a perfect match; exactly one empty is no match.
func SkillScore(candidateSkills, jobSkills []string) float64 {
	candidate := skillSet(candidateSkills)
	job := skillSet(jobSkills)

	if len(candidate) == 0 && len(job) == 0 {
		return 1.0
	}
	if len(candidate) == 0 || len(job) == 0 {
		return 0.0
	}

	intersection := 0
	for skill := range candidate {
		if _, ok := job[skill]; ok {
			intersection++
		}
	}
	union := len(candidate) + len(job) - intersection
	return float64(intersection) / float64(union)
}

// ExperienceScore rewards candidates at or slightly above the minimum.
func ExperienceScore(candidateExp, jobMinExp *int) float64 {
	if candidateExp == nil || jobMinExp == nil {
		return neutralExperienceScore
	}

	have, need := *candidateExp, *jobMinExp
	if have >= need {
		excess := have - need - idealExperienceBand
		if excess <= 0 {
			return 1.0
		}
		return 1 - math.Min(overqualifiedCap, float64(excess)*overqualifiedStep)
	}

	deficit := need - have
	return 1 - math.Min(underqualifiedCap, float64(deficit)*underqualifiedStep)
}

// LocationScore is a mild penalty for different locations, never zero.
func LocationScore(sameLocation bool) float64 {
	if sameLocation {
		return sameLocationScore
	}
	return otherLocationScore
}

// SameLocation compares two location tags case-insensitively.
// An unknown location on either side never matches.
func SameLocation(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

// MatchingSkills returns the normalized skills present on both sides, sorted.
func MatchingSkills(candidateSkills, jobSkills []string) []string {
	candidate := skillSet(candidateSkills)
	matching := make([]string, 0)
	for skill := range skillSet(jobSkills) {
		if _, ok := candidate[skill]; ok {
			matching = append(matching, skill)
		}
	}
	sort.Strings(matching)
	return matching
}

// MissingSkills returns the normalized job skills the candidate lacks, sorted.
func MissingSkills(candidateSkills, jobSkills []string) []string {
	candidate := skillSet(candidateSkills)
	missing := make([]string, 0)
	for skill := range skillSet(jobSkills) {
		if _, ok := candidate[skill]; !ok {
			missing = append(missing, skill)
		}
	}
	sort.Strings(missing)
	return missing
}

// skillSet lowercases and trims skills, dropping blanks.
func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}

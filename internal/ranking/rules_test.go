package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func TestSkillScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate []string
		job       []string
		want      float64
	}{
		{"both empty", nil, []string{}, 1.0},
		{"candidate empty", nil, []string{"go"}, 0.0},
		{"job empty", []string{"go"}, nil, 0.0},
		{"identical", []string{"go", "sql"}, []string{"sql", "go"}, 1.0},
		{"disjoint", []string{"go"}, []string{"java"}, 0.0},
		{"one of three", []string{"react", "node"}, []string{"react", "typescript"}, 1.0 / 3.0},
		{"case and whitespace insensitive", []string{" React ", "NODE"}, []string{"react", "node"}, 1.0},
		{"duplicates collapse", []string{"go", "Go", "GO"}, []string{"go"}, 1.0},
		{"blank skills ignored", []string{"", "  "}, []string{}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SkillScore(tt.candidate, tt.job), 1e-12)
		})
	}
}

func TestExperienceScore(t *testing.T) {
	tests := []struct {
		name      string
		candidate *int
		minimum   *int
		want      float64
	}{
		{"candidate unknown", nil, intp(3), 0.5},
		{"minimum unknown", intp(3), nil, 0.5},
		{"both unknown", nil, nil, 0.5},
		{"exact minimum", intp(3), intp(3), 1.0},
		{"one over", intp(4), intp(3), 1.0},
		{"two over", intp(5), intp(3), 1.0},
		{"three over", intp(6), intp(3), 0.95},
		{"ten years for three", intp(10), intp(3), 0.75},
		{"overqualified cap", intp(30), intp(3), 0.7},
		{"one short", intp(2), intp(3), 0.8},
		{"two short", intp(1), intp(3), 0.6},
		{"underqualified cap", intp(0), intp(10), 0.2},
		{"zero minimum", intp(0), intp(0), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExperienceScore(tt.candidate, tt.minimum), 1e-12)
		})
	}
}

func TestLocationScore(t *testing.T) {
	assert.Equal(t, 1.0, LocationScore(true))
	assert.Equal(t, 0.8, LocationScore(false))
}

func TestSameLocation(t *testing.T) {
	assert.True(t, SameLocation("Berlin", "berlin"))
	assert.True(t, SameLocation(" Remote ", "REMOTE"))
	assert.False(t, SameLocation("Berlin", "Munich"))
	assert.False(t, SameLocation("", ""))
	assert.False(t, SameLocation("Berlin", " "))
}

func TestRuleBoost(t *testing.T) {
	got := RuleBoost(RuleInput{
		CandidateSkills: []string{"react", "node"},
		JobSkills:       []string{"react", "typescript"},
		CandidateExp:    intp(5),
		JobMinExp:       intp(3),
		SameLocation:    true,
	})
	assert.InDelta(t, 0.6, got, 1e-12)

	// Worst case still has the location and experience floors.
	worst := RuleBoost(RuleInput{
		CandidateSkills: []string{"cobol"},
		JobSkills:       []string{"go"},
		CandidateExp:    intp(0),
		JobMinExp:       intp(20),
	})
	assert.InDelta(t, 0.3*0.2+0.1*0.8, worst, 1e-12)

	best := RuleBoost(RuleInput{CandidateExp: intp(3), JobMinExp: intp(3), SameLocation: true})
	assert.InDelta(t, 1.0, best, 1e-12)
}

func TestMatchingAndMissingSkills(t *testing.T) {
	candidate := []string{"Go", "Docker", "SQL"}
	job := []string{"go", "kubernetes", "sql", "aws"}

	assert.Equal(t, []string{"go", "sql"}, MatchingSkills(candidate, job))
	assert.Equal(t, []string{"aws", "kubernetes"}, MissingSkills(candidate, job))
	assert.Equal(t, []string{}, MatchingSkills(nil, job))
	assert.Equal(t, []string{}, MissingSkills(candidate, nil))
}

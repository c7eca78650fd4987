package retrieval

import (
	"testing"
	"time"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/ShreekarSeelavantula/career-compass/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func ids(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.ID
	}
	return out
}

func candidateDocs() []model.Document {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Document{
		{
			"documentID":       "c1",
			"full_name":        "Ada Lovelace",
			"headline":         "Backend Golang engineer",
			"resume_text":      "Built payment systems in Go and PostgreSQL",
			"skills":           []string{"go", "postgresql"},
			"location":         "berlin",
			"experience_years": 6.0,
			"created_at":       base,
		},
		{
			"documentID":       "c2",
			"full_name":        "Grace Hopper",
			"headline":         "Frontend developer",
			"resume_text":      "React and TypeScript, some golang tooling",
			"skills":           []string{"react", "typescript"},
			"location":         "remote",
			"experience_years": 2.0,
			"created_at":       base.Add(48 * time.Hour),
		},
		{
			"documentID": "c3",
			"full_name":  "Linus",
			"headline":   "Kernel hacker",
			"skills":     []interface{}{"c", "linux"},
			"location":   "berlin",
			"created_at": base.Add(24 * time.Hour),
		},
	}
}

func TestExecute_EmptyQueryReturnsAllById(t *testing.T) {
	hits, err := Execute(candidateDocs(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids(hits))
}

func TestExecute_Filters(t *testing.T) {
	tests := []struct {
		name  string
		query *Query
		want  []string
	}{
		{"term on keyword", NewQuery().Term("location", "Berlin"), []string{"c1", "c3"}},
		{"term on list field", NewQuery().Term("skills", "react"), []string{"c2"}},
		{"terms any of", NewQuery().Terms("skills", "linux", "go"), []string{"c1", "c3"}},
		{"range gte excludes missing field", NewQuery().Range("experience_years", 3, nil), []string{"c1"}},
		{"range both bounds", NewQuery().Range("experience_years", 1, 5), []string{"c2"}},
		{"not equal", NewQuery().Where("location", OpNotEqual, "berlin"), []string{"c2"}},
		{"contains substring", NewQuery().Where("headline", OpContains, "ENGINEER"), []string{"c1"}},
		{"time range is exclusive", NewQuery().Where("created_at", OpGreater, "2024-01-02"), []string{"c2"}},
		{"time range inclusive", NewQuery().Where("created_at", OpGreaterEqual, "2024-01-02"), []string{"c2", "c3"}},
		{"conjunction", NewQuery().Term("location", "berlin").Terms("skills", "go"), []string{"c1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := Execute(candidateDocs(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(hits))
		})
	}
}

func TestExecute_MultiMatchBoosts(t *testing.T) {
	q := NewQuery().Match("golang",
		Boost("headline", 2),
		Boost("resume_text", 1),
	)

	hits, err := Execute(candidateDocs(), q)
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c2"}, ids(hits))
	assert.Equal(t, 2.0, hits[0].Score)
	assert.Equal(t, 1.0, hits[1].Score)
}

func TestExecute_MultiMatchBlankTextIgnored(t *testing.T) {
	q := NewQuery().Match("   ", Boost("headline", 2))
	assert.Nil(t, q.TextMatch)

	hits, err := Execute(candidateDocs(), q)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestExecute_SortAndLimit(t *testing.T) {
	hits, err := Execute(candidateDocs(), NewQuery().SortBy("created_at", "desc").Limit(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c3"}, ids(hits))

	hits, err = Execute(candidateDocs(), NewQuery().SortBy("experience_years", "asc"))
	require.NoError(t, err)
	// Missing values sort lowest.
	assert.Equal(t, []string{"c3", "c2", "c1"}, ids(hits))
}

func TestExecute_Nearest(t *testing.T) {
	docs := []model.Document{
		{"documentID": "a", "embedding": []float64{1, 0}},
		{"documentID": "b", "embedding": []float64{0.6, 0.8}},
		{"documentID": "c", "embedding": []float64{-1, 0}},
		{"documentID": "d"},
	}

	hits, err := Execute(docs, NewQuery().Near("embedding", []float64{1, 0}, 0.5))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(hits))
	assert.InDelta(t, 0.6, hits[1].Score, 1e-12)

	bad := []model.Document{{"documentID": "x", "embedding": []float64{1, 0, 0}}}
	_, err = Execute(bad, NewQuery().Near("embedding", []float64{1, 0}, 0))
	assert.ErrorIs(t, err, apperrors.ErrDimensionMismatch)
}

func TestFromFilterParams(t *testing.T) {
	filters := FromFilterParams(map[string]interface{}{
		"experience_years_gte":   3,
		"skills_contains_any_of": []interface{}{"go"},
		"location":               "berlin",
		"status_ne":              "closed",
	})

	assert.Equal(t, []Filter{
		{Field: "experience_years", Operator: OpGreaterEqual, Value: 3},
		{Field: "location", Operator: OpEqual, Value: "berlin"},
		{Field: "skills", Operator: OpContainsAnyOf, Value: []interface{}{"go"}},
		{Field: "status", Operator: OpNotEqual, Value: "closed"},
	}, filters)
}

func TestSearchCandidates(t *testing.T) {
	q := SearchCandidates(CandidateSearch{
		Text:          "golang",
		Skills:        []string{"go", " "},
		Location:      "Berlin",
		MinExperience: intp(5),
	})

	require.NotNil(t, q.TextMatch)
	assert.Len(t, q.TextMatch.Fields, 4)
	assert.Equal(t, DefaultCandidateSearchSize, q.Size)

	hits, err := Execute(candidateDocs(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids(hits))

	noText := SearchCandidates(CandidateSearch{})
	assert.Nil(t, noText.TextMatch)
	assert.Equal(t, []SortField{{Field: "created_at", Order: "desc"}}, noText.Sort)
}

func TestSearchJobsAndOpenJobs(t *testing.T) {
	docs := []model.Document{
		{"documentID": "j1", "status": "open", "title": "Go Engineer", "description": "backend", "company": "Acme", "skills_required": []string{"go"}, "location": "berlin", "employment_type": "full_time", "created_at": "2024-03-01"},
		{"documentID": "j2", "status": "closed", "title": "Go Engineer", "description": "backend", "company": "Beta", "location": "berlin", "employment_type": "full_time", "created_at": "2024-03-02"},
		{"documentID": "j3", "status": "open", "title": "Designer", "description": "figma work for golang shop", "company": "Gamma", "location": "remote", "employment_type": "contract", "created_at": "2024-03-03"},
	}

	hits, err := Execute(docs, SearchJobs(JobSearch{Text: "golang engineer"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"j1", "j3"}, ids(hits))

	hits, err = Execute(docs, SearchJobs(JobSearch{Location: "Remote", EmploymentType: "contract"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"j3"}, ids(hits))

	hits, err = Execute(docs, OpenJobs())
	require.NoError(t, err)
	assert.Equal(t, []string{"j3", "j1"}, ids(hits))
}

func TestApplicationQueries(t *testing.T) {
	docs := []model.Document{
		{"documentID": "a1", "job_id": "j1", "seeker_id": "s1", "score": 0.4, "created_at": "2024-01-01"},
		{"documentID": "a2", "job_id": "j1", "seeker_id": "s2", "score": 0.9, "created_at": "2024-01-02"},
		{"documentID": "a3", "job_id": "j2", "seeker_id": "s1", "score": 0.9, "created_at": "2024-01-03"},
	}

	hits, err := Execute(docs, ApplicationsByJob("j1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a2", "a1"}, ids(hits))

	hits, err = Execute(docs, ApplicationsBySeeker("s1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a3", "a1"}, ids(hits))

	hits, err = Execute(docs, ApplicationByJobAndSeeker("j2", "s1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a3"}, ids(hits))
}

package retrieval

import (
	"strings"
)

// Default result sizes.
const (
	DefaultCandidateSearchSize = 100
	DefaultJobSearchSize       = 50
	OpenJobsSize               = 200
)

// CandidateSearch are the criteria recruiters search seekers by.
type CandidateSearch struct {
	Text          string
	Skills        []string
	Location      string
	MinExperience *int
}

// SearchCandidates matches name and headline (boost 2), resume text and skills.
// Newest profiles first when there is no text to rank by.
func SearchCandidates(c CandidateSearch) *Query {
	q := NewQuery().Match(c.Text,
		Boost("full_name", 2),
		Boost("headline", 2),
		Boost("resume_text", 1),
		Boost("skills", 1),
	)
	if skills := nonBlank(c.Skills); len(skills) > 0 {
		q.Terms("skills", skills...)
	}
	if loc := strings.TrimSpace(c.Location); loc != "" {
		q.Term("location", loc)
	}
	if c.MinExperience != nil {
		q.Range("experience_years", float64(*c.MinExperience), nil)
	}
	if q.TextMatch == nil {
		q.SortBy("created_at", "desc")
	}
	return q.Limit(DefaultCandidateSearchSize)
}

// JobSearch are the criteria seekers search postings by.
type JobSearch struct {
	Text           string
	Location       string
	EmploymentType string
}

// SearchJobs matches open postings on title (boost 3), description and
// company (boost 2) and required skills.
func SearchJobs(s JobSearch) *Query {
	q := NewQuery().Term("status", "open").Match(s.Text,
		Boost("title", 3),
		Boost("description", 2),
		Boost("company", 2),
		Boost("skills_required", 1),
	)
	if loc := strings.TrimSpace(s.Location); loc != "" {
		q.Term("location", loc)
	}
	if et := strings.TrimSpace(s.EmploymentType); et != "" {
		q.Term("employment_type", et)
	}
	if q.TextMatch == nil {
		q.SortBy("created_at", "desc")
	}
	return q.Limit(DefaultJobSearchSize)
}

// OpenJobs lists open postings, newest first.
func OpenJobs() *Query {
	return NewQuery().Term("status", "open").SortBy("created_at", "desc").Limit(OpenJobsSize)
}

// JobsByRecruiter lists a recruiter's postings, newest first.
func JobsByRecruiter(recruiterID string) *Query {
	return NewQuery().Term("recruiter_id", recruiterID).SortBy("created_at", "desc")
}

// ApplicationsByJob lists applications for a posting, best score first.
func ApplicationsByJob(jobID string) *Query {
	return NewQuery().Term("job_id", jobID).SortBy("score", "desc")
}

// ApplicationsBySeeker lists a seeker's applications, newest first.
func ApplicationsBySeeker(seekerID string) *Query {
	return NewQuery().Term("seeker_id", seekerID).SortBy("created_at", "desc")
}

// ApplicationByJobAndSeeker finds the application of one seeker to one posting.
func ApplicationByJobAndSeeker(jobID, seekerID string) *Query {
	return NewQuery().Term("job_id", jobID).Term("seeker_id", seekerID).Limit(1)
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ShreekarSeelavantula/career-compass/internal/retrieval"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

// CreateJobHandler creates a job posting.
// Request Body: model.JobPosting
func (api *API) CreateJobHandler(c *gin.Context) {
	var posting model.JobPosting
	if err := c.ShouldBindJSON(&posting); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	created, err := api.matching.CreateJobPosting(c.Request.Context(), &posting)
	if err != nil {
		SendServiceError(c, "job creation", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListJobsHandler lists a recruiter's postings, or searches open postings
// when no recruiter_id is given.
// Query: recruiter_id, q, location, employment_type
func (api *API) ListJobsHandler(c *gin.Context) {
	if recruiterID := c.Query("recruiter_id"); recruiterID != "" {
		jobs, err := api.matching.JobsByRecruiter(c.Request.Context(), recruiterID)
		if err != nil {
			SendServiceError(c, "job listing", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": nonNil(jobs), "total": len(jobs)})
		return
	}

	var query JobQuery
	if result := ValidateQueryBinding(c, &query); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	jobs, err := api.matching.SearchJobs(c.Request.Context(), "", retrieval.JobSearch{
		Text:           query.Text,
		Location:       query.Location,
		EmploymentType: query.EmploymentType,
	})
	if err != nil {
		SendServiceError(c, "job search", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": len(jobs)})
}

func (api *API) GetJobHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	posting, err := api.matching.GetJobPosting(c.Request.Context(), id)
	if err != nil {
		SendServiceError(c, "job lookup", err)
		return
	}
	c.JSON(http.StatusOK, posting)
}

// UpdateJobHandler applies a partial update to a posting.
// Request Body: any subset of title, description, company, location,
// employment_type, skills_required, min_experience, salary_min, salary_max, status
func (api *API) UpdateJobHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	updated, err := api.matching.UpdateJobPosting(c.Request.Context(), id, patch)
	if err != nil {
		SendServiceError(c, "job update", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (api *API) DeleteJobHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := api.matching.DeleteJobPosting(c.Request.Context(), id); err != nil {
		SendServiceError(c, "job deletion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job '" + id + "' deleted successfully"})
}

// JobCandidatesHandler ranks candidates for a posting. Without filters every
// embedded candidate is ranked.
// Query: q, skills (comma separated), location, min_experience
func (api *API) JobCandidatesHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var query CandidateQuery
	if result := ValidateQueryBinding(c, &query); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	var skills []string
	for _, s := range strings.Split(query.Skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	var (
		ranked []model.RankedCandidate
		err    error
	)
	if query.Text == "" && len(skills) == 0 && query.Location == "" && query.MinExperience == nil {
		ranked, err = api.matching.RankCandidates(c.Request.Context(), id, nil)
	} else {
		ranked, err = api.matching.SearchCandidates(c.Request.Context(), id, retrieval.CandidateSearch{
			Text:          query.Text,
			Skills:        skills,
			Location:      query.Location,
			MinExperience: query.MinExperience,
		})
	}
	if err != nil {
		SendServiceError(c, "candidate ranking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": ranked, "total": len(ranked)})
}

// RankCandidatesHandler ranks the given candidates for a posting.
// Request Body: {"candidate_ids": [...]}
func (api *API) RankCandidatesHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RankRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	ranked, err := api.matching.RankCandidates(c.Request.Context(), id, req.CandidateIDs)
	if err != nil {
		SendServiceError(c, "candidate ranking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": ranked, "total": len(ranked)})
}

// ExplainMatchHandler explains how a stored candidate scores against a posting.
func (api *API) ExplainMatchHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	candidateID, ok := pathID(c, "candidateId")
	if !ok {
		return
	}

	explanation, err := api.matching.Explain(c.Request.Context(), id, candidateID)
	if err != nil {
		SendServiceError(c, "explanation", err)
		return
	}
	c.JSON(http.StatusOK, explanation)
}

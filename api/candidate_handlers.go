package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShreekarSeelavantula/career-compass/internal/retrieval"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

// UpsertCandidateHandler creates or replaces a candidate profile.
// Request Body: model.Candidate (id optional)
func (api *API) UpsertCandidateHandler(c *gin.Context) {
	var candidate model.Candidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	stored, err := api.matching.UpsertCandidate(c.Request.Context(), &candidate)
	if err != nil {
		SendServiceError(c, "candidate upsert", err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (api *API) GetCandidateHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	candidate, err := api.matching.GetCandidate(c.Request.Context(), id)
	if err != nil {
		SendServiceError(c, "candidate lookup", err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

func (api *API) DeleteCandidateHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := api.matching.DeleteCandidate(c.Request.Context(), id); err != nil {
		SendServiceError(c, "candidate deletion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Candidate '" + id + "' deleted successfully"})
}

// RecommendJobsHandler returns the best open postings for a candidate.
func (api *API) RecommendJobsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	jobs, err := api.matching.RecommendJobs(c.Request.Context(), id)
	if err != nil {
		SendServiceError(c, "recommendation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs, "total": len(jobs)})
}

// SearchJobsHandler searches postings on behalf of a candidate.
// Query: q, location, employment_type
func (api *API) SearchJobsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var query JobQuery
	if result := ValidateQueryBinding(c, &query); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	jobs, err := api.matching.SearchJobs(c.Request.Context(), id, retrieval.JobSearch{
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

func (api *API) SeekerApplicationsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := api.matching.GetCandidate(c.Request.Context(), id); err != nil {
		SendServiceError(c, "candidate lookup", err)
		return
	}
	apps, err := api.matching.ApplicationsForSeeker(c.Request.Context(), id)
	if err != nil {
		SendServiceError(c, "application listing", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": nonNil(apps), "total": len(apps)})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

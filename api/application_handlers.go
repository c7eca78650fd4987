package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShreekarSeelavantula/career-compass/internal/tasks"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

// ApplyHandler records an application to a posting.
// Request Body: {"seeker_id": "...", "cover_letter": "..."}
func (api *API) ApplyHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req ApplyRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	app, err := api.matching.Apply(c.Request.Context(), id, req.SeekerID, req.CoverLetter)
	if err != nil {
		SendServiceError(c, "application", err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// JobApplicationsHandler lists a posting's applications, best score first.
func (api *API) JobApplicationsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	apps, err := api.matching.ApplicationsForJob(c.Request.Context(), id)
	if err != nil {
		SendServiceError(c, "application listing", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": nonNil(apps), "total": len(apps)})
}

// UpdateApplicationStatusHandler moves an application through the hiring pipeline.
// Request Body: {"status": "shortlisted"}
func (api *API) UpdateApplicationStatusHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateApplicationStatus(req.Status); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	app, err := api.matching.UpdateApplicationStatus(c.Request.Context(), id, model.ApplicationStatus(req.Status))
	if err != nil {
		SendServiceError(c, "application update", err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// RerankApplicationsHandler recomputes application scores in the background.
func (api *API) RerankApplicationsHandler(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, err := api.matching.GetJobPosting(c.Request.Context(), id); err != nil {
		SendServiceError(c, "job lookup", err)
		return
	}

	taskID, err := api.tasks.Submit(model.TaskTypeRerankApplications, id, nil,
		func(ctx context.Context, progress tasks.ProgressFunc) error {
			_, err := api.matching.RerankApplications(ctx, id, progress)
			return err
		})
	if err != nil {
		SendTaskExecutionError(c, "rerank", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Reranking started for job '" + id + "'",
		"task_id": taskID,
	})
}

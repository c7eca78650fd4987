package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ShreekarSeelavantula/career-compass/internal/tasks"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

// GetTaskHandler handles requests to get task status by ID
func (api *API) GetTaskHandler(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	task, err := api.tasks.Get(taskID)
	if err != nil {
		SendServiceError(c, "task lookup", err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// ListTasksHandler lists tasks, optionally for one target and status.
// Query: target, status
func (api *API) ListTasksHandler(c *gin.Context) {
	target := c.Query("target")

	var statusFilter *model.TaskStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.TaskStatus(statusParam)
		statusFilter = &status
	}

	list := api.tasks.List(target, statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"tasks":  nonNil(list),
		"target": target,
		"total":  len(list),
	})
}

// GetTaskMetricsHandler handles requests to get task performance metrics
func (api *API) GetTaskMetricsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"metrics": api.tasks.Metrics()})
}

// ReembedCandidatesHandler recomputes every candidate embedding in the background.
func (api *API) ReembedCandidatesHandler(c *gin.Context) {
	api.submitReembed(c, model.TaskTypeReembedCandidates, api.matching.ReembedCandidates)
}

// ReembedJobsHandler recomputes every posting embedding in the background.
func (api *API) ReembedJobsHandler(c *gin.Context) {
	api.submitReembed(c, model.TaskTypeReembedJobs, api.matching.ReembedJobs)
}

func (api *API) submitReembed(c *gin.Context, taskType model.TaskType, run func(context.Context, func(int, int, string)) (int, error)) {
	taskID, err := api.tasks.Submit(taskType, "", nil, func(ctx context.Context, progress tasks.ProgressFunc) error {
		_, err := run(ctx, progress)
		return err
	})
	if err != nil {
		SendTaskExecutionError(c, string(taskType), err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"task_id": taskID,
	})
}

package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ShreekarSeelavantula/career-compass/internal/logger"
	"github.com/ShreekarSeelavantula/career-compass/services"
)

// MaxRequestBodySize bounds every request body.
const MaxRequestBodySize = 10 << 20

// API holds dependencies for API handlers.
type API struct {
	matching services.MatchingService
	tasks    services.TaskRunner
	logger   *zap.Logger
	started  time.Time
}

// NewAPI creates a new API handler structure.
func NewAPI(matching services.MatchingService, tasks services.TaskRunner, log *zap.Logger) *API {
	return &API{
		matching: matching,
		tasks:    tasks,
		logger:   logger.OrNop(log),
		started:  time.Now(),
	}
}

// NewRouter builds a gin engine with the standard middleware and every route.
func NewRouter(matching services.MatchingService, tasks services.TaskRunner, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		LoggerMiddleware(log),
		CORSMiddleware(),
		RequestSizeLimitMiddleware(MaxRequestBodySize),
	)
	SetupRoutes(router, NewAPI(matching, tasks, log))
	return router
}

// SetupRoutes defines all the API routes.
func SetupRoutes(router *gin.Engine, api *API) {
	router.GET("/health", api.HealthCheckHandler)

	// Stateless scoring
	router.POST("/score", api.ScoreHandler)
	router.POST("/score/explain", api.ExplainScoreHandler)
	router.POST("/embeddings", api.EmbeddingsHandler)

	candidateRoutes := router.Group("/candidates")
	{
		candidateRoutes.PUT("", api.UpsertCandidateHandler)
		candidateRoutes.GET("/:id", api.GetCandidateHandler)
		candidateRoutes.DELETE("/:id", api.DeleteCandidateHandler)
		candidateRoutes.GET("/:id/recommendations", api.RecommendJobsHandler)
		candidateRoutes.GET("/:id/jobs", api.SearchJobsHandler)
		candidateRoutes.GET("/:id/applications", api.SeekerApplicationsHandler)
	}

	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.POST("", api.CreateJobHandler)
		jobRoutes.GET("", api.ListJobsHandler)
		jobRoutes.GET("/:id", api.GetJobHandler)
		jobRoutes.PATCH("/:id", api.UpdateJobHandler)
		jobRoutes.DELETE("/:id", api.DeleteJobHandler)
		jobRoutes.GET("/:id/candidates", api.JobCandidatesHandler)
		jobRoutes.POST("/:id/rank", api.RankCandidatesHandler)
		jobRoutes.POST("/:id/applications", api.ApplyHandler)
		jobRoutes.GET("/:id/applications", api.JobApplicationsHandler)
		jobRoutes.POST("/:id/rerank", api.RerankApplicationsHandler)
		jobRoutes.GET("/:id/explain/:candidateId", api.ExplainMatchHandler)
	}

	router.PATCH("/applications/:id/status", api.UpdateApplicationStatusHandler)

	taskRoutes := router.Group("/tasks")
	{
		taskRoutes.GET("", api.ListTasksHandler)
		taskRoutes.GET("/metrics", api.GetTaskMetricsHandler)
		taskRoutes.GET("/:taskId", api.GetTaskHandler)
		taskRoutes.POST("/reembed/candidates", api.ReembedCandidatesHandler)
		taskRoutes.POST("/reembed/jobs", api.ReembedJobsHandler)
	}
}

// HealthCheckHandler reports liveness and the active scoring configuration.
func (api *API) HealthCheckHandler(c *gin.Context) {
	ranker := api.matching.Ranker()
	lexical, semantic, rule := ranker.Settings().Weights()

	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"uptime_seconds":      int64(time.Since(api.started).Seconds()),
		"embedding_dimension": ranker.EmbeddingDimension(),
		"idf_mode":            ranker.Settings().IDFMode,
		"weights": gin.H{
			"bm25":       lexical,
			"semantic":   semantic,
			"rule_boost": rule,
		},
	})
}

// pathID reads and validates a path parameter, sending a 400 when invalid.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if result := ValidateID(name, id); result.HasErrors() {
		SendValidationError(c, result)
		return "", false
	}
	return id, true
}

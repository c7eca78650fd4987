// Package services declares the contracts the HTTP layer depends on.
package services

import (
	"context"

	"github.com/ShreekarSeelavantula/career-compass/internal/embedding"
	"github.com/ShreekarSeelavantula/career-compass/internal/ranking"
	"github.com/ShreekarSeelavantula/career-compass/internal/retrieval"
	"github.com/ShreekarSeelavantula/career-compass/internal/tasks"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

// ProgressFunc reports progress of a long-running operation.
type ProgressFunc = func(current, total int, message string)

// CandidateManager manages job seeker profiles.
type CandidateManager interface {
	UpsertCandidate(ctx context.Context, c *model.Candidate) (*model.Candidate, error)
	GetCandidate(ctx context.Context, id string) (*model.Candidate, error)
	DeleteCandidate(ctx context.Context, id string) error
}

// JobPostingManager manages recruiter postings.
type JobPostingManager interface {
	CreateJobPosting(ctx context.Context, j *model.JobPosting) (*model.JobPosting, error)
	GetJobPosting(ctx context.Context, id string) (*model.JobPosting, error)
	UpdateJobPosting(ctx context.Context, id string, patch map[string]any) (*model.JobPosting, error)
	DeleteJobPosting(ctx context.Context, id string) error
	JobsByRecruiter(ctx context.Context, recruiterID string) ([]*model.JobPosting, error)
}

// Matcher ranks each side of the market against the other.
type Matcher interface {
	SearchJobs(ctx context.Context, seekerID string, search retrieval.JobSearch) ([]model.RankedJob, error)
	RecommendJobs(ctx context.Context, seekerID string) ([]model.RankedJob, error)
	RankCandidates(ctx context.Context, jobID string, candidateIDs []string) ([]model.RankedCandidate, error)
	SearchCandidates(ctx context.Context, jobID string, search retrieval.CandidateSearch) ([]model.RankedCandidate, error)
	Explain(ctx context.Context, jobID, seekerID string) (model.ScoreExplanation, error)
	Ranker() *ranking.Service
	Embedder() embedding.Embedder
	EmbedTexts(ctx context.Context, texts []string) ([]embedding.Vector, error)
}

// ApplicationManager handles applications and their scores.
type ApplicationManager interface {
	Apply(ctx context.Context, jobID, seekerID, coverLetter string) (*model.Application, error)
	ApplicationsForJob(ctx context.Context, jobID string) ([]*model.Application, error)
	ApplicationsForSeeker(ctx context.Context, seekerID string) ([]*model.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error)
	RerankApplications(ctx context.Context, jobID string, progress ProgressFunc) (int, error)
	ReembedCandidates(ctx context.Context, progress ProgressFunc) (int, error)
	ReembedJobs(ctx context.Context, progress ProgressFunc) (int, error)
}

// MatchingService is everything the HTTP layer needs from the matching layer.
type MatchingService interface {
	CandidateManager
	JobPostingManager
	Matcher
	ApplicationManager
}

// TaskRunner schedules and reports background tasks.
type TaskRunner interface {
	Submit(taskType model.TaskType, target string, metadata map[string]string, fn tasks.Func) (string, error)
	Get(taskID string) (*model.Task, error)
	List(target string, status *model.TaskStatus) []*model.Task
	Metrics() tasks.MetricsData
}

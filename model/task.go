package model

import (
	"time"
)

// TaskStatus represents the status of a background task
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// TaskType identifies the work a task performs
type TaskType string

const (
	TaskTypeRerankApplications TaskType = "rerank_applications"
	TaskTypeReembedCandidates  TaskType = "reembed_candidates"
	TaskTypeReembedJobs        TaskType = "reembed_jobs"
)

// Task is a long-running background operation, such as re-scoring every
// application of a posting after its description changed.
type Task struct {
	ID          string            `json:"id"`
	Type        TaskType          `json:"type"`
	Status      TaskStatus        `json:"status"`
	Target      string            `json:"target,omitempty"` // e.g. the job posting id
	Progress    *TaskProgress     `json:"progress,omitempty"`
	Error       string            `json:"error,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	StartedAt   *time.Time        `json:"started_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// IsFinished reports whether the task reached a terminal state.
func (t *Task) IsFinished() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusFailed || t.Status == TaskStatusCancelled
}

// TaskProgress tracks the progress of a task
type TaskProgress struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
}

// GetProgressPercentage returns the progress as a percentage (0-100)
func (tp *TaskProgress) GetProgressPercentage() float64 {
	if tp.Total == 0 {
		return 0
	}
	return float64(tp.Current) / float64(tp.Total) * 100
}

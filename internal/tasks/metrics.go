package tasks

import (
	"sync"
	"time"

	"github.com/ShreekarSeelavantula/career-compass/model"
)

// keep at most this many execution samples per task type
const maxSamplesPerType = 100

// MetricsData is a point-in-time copy of Metrics, safe to serialize.
type MetricsData struct {
	TasksCreated         int64                      `json:"tasks_created"`
	TasksCompleted       int64                      `json:"tasks_completed"`
	TasksFailed          int64                      `json:"tasks_failed"`
	TotalExecutionTime   time.Duration              `json:"total_execution_time_ns"`
	AverageExecutionTime time.Duration              `json:"average_execution_time_ns"`
	TasksByType          map[model.TaskType]int64   `json:"tasks_by_type"`
	TasksByStatus        map[model.TaskStatus]int64 `json:"tasks_by_status"`
	SuccessRate          float64                    `json:"success_rate"`
	CurrentWorkload      int64                      `json:"current_workload"`
	LastUpdated          time.Time                  `json:"last_updated"`
}

// Metrics tracks task counts and execution times.
type Metrics struct {
	mu                   sync.RWMutex
	tasksCreated         int64
	tasksCompleted       int64
	tasksFailed          int64
	totalExecutionTime   time.Duration
	tasksByType          map[model.TaskType]int64
	tasksByStatus        map[model.TaskStatus]int64
	executionTimesByType map[model.TaskType][]time.Duration
	lastUpdated          time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		tasksByType:          make(map[model.TaskType]int64),
		tasksByStatus:        make(map[model.TaskStatus]int64),
		executionTimesByType: make(map[model.TaskType][]time.Duration),
		lastUpdated:          time.Now(),
	}
}

func (m *Metrics) RecordCreated(taskType model.TaskType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasksCreated++
	m.tasksByType[taskType]++
	m.tasksByStatus[model.TaskStatusPending]++
	m.lastUpdated = time.Now()
}

func (m *Metrics) RecordStatusChange(oldStatus, newStatus model.TaskStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldStatus != "" {
		m.tasksByStatus[oldStatus]--
		if m.tasksByStatus[oldStatus] < 0 {
			m.tasksByStatus[oldStatus] = 0
		}
	}
	m.tasksByStatus[newStatus]++
	m.lastUpdated = time.Now()
}

func (m *Metrics) RecordCompleted(taskType model.TaskType, executionTime time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasksCompleted++
	m.totalExecutionTime += executionTime

	samples := append(m.executionTimesByType[taskType], executionTime)
	if len(samples) > maxSamplesPerType {
		samples = samples[1:]
	}
	m.executionTimesByType[taskType] = samples
	m.lastUpdated = time.Now()
}

func (m *Metrics) RecordFailed(model.TaskType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasksFailed++
	m.lastUpdated = time.Now()
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsData {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byType := make(map[model.TaskType]int64, len(m.tasksByType))
	for k, v := range m.tasksByType {
		byType[k] = v
	}
	byStatus := make(map[model.TaskStatus]int64, len(m.tasksByStatus))
	for k, v := range m.tasksByStatus {
		byStatus[k] = v
	}

	var average time.Duration
	if m.tasksCompleted > 0 {
		average = m.totalExecutionTime / time.Duration(m.tasksCompleted)
	}

	return MetricsData{
		TasksCreated:         m.tasksCreated,
		TasksCompleted:       m.tasksCompleted,
		TasksFailed:          m.tasksFailed,
		TotalExecutionTime:   m.totalExecutionTime,
		AverageExecutionTime: average,
		TasksByType:          byType,
		TasksByStatus:        byStatus,
		SuccessRate:          m.successRateLocked(),
		CurrentWorkload:      m.workloadLocked(),
		LastUpdated:          m.lastUpdated,
	}
}

// AverageExecutionTime returns the mean of the recent samples for taskType.
func (m *Metrics) AverageExecutionTime(taskType model.TaskType) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	samples := m.executionTimesByType[taskType]
	if len(samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range samples {
		total += d
	}
	return total / time.Duration(len(samples))
}

// SuccessRate is completed / (completed + failed), or 1 before any task finished.
func (m *Metrics) SuccessRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.successRateLocked()
}

// CurrentWorkload is the number of pending and running tasks.
func (m *Metrics) CurrentWorkload() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.workloadLocked()
}

func (m *Metrics) successRateLocked() float64 {
	finished := m.tasksCompleted + m.tasksFailed
	if finished == 0 {
		return 1.0
	}
	return float64(m.tasksCompleted) / float64(finished)
}

func (m *Metrics) workloadLocked() int64 {
	return m.tasksByStatus[model.TaskStatusPending] + m.tasksByStatus[model.TaskStatusRunning]
}

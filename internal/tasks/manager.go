// Package tasks runs long operations, such as re-ranking every application
// of a posting, in the background with bounded concurrency.
package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShreekarSeelavantula/career-compass/internal/errors"
	"github.com/ShreekarSeelavantula/career-compass/internal/logger"
	"github.com/ShreekarSeelavantula/career-compass/model"
)

const (
	DefaultWorkers   = 2
	DefaultRetention = 24 * time.Hour
	cleanupInterval  = time.Hour
)

// ProgressFunc reports how far a running task has got.
type ProgressFunc func(current, total int, message string)

// Func is the body of a task. ctx is cancelled when the manager stops.
type Func func(ctx context.Context, progress ProgressFunc) error

// Manager tracks tasks and executes them on a fixed number of worker slots.
type Manager struct {
	mu        sync.RWMutex
	tasks     map[string]*model.Task
	workers   chan struct{}
	stopChan  chan struct{}
	stopOnce  sync.Once
	stopped   bool // guarded by mu; set before wg.Wait so no Add follows it
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	metrics   *Metrics
	retention time.Duration
	logger    *zap.Logger
}

type Option func(*Manager)

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = logger.OrNop(l) }
}

// WithRetention sets how long finished tasks are kept.
func WithRetention(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.retention = d
		}
	}
}

func NewManager(maxWorkers int, opts ...Option) *Manager {
	if maxWorkers <= 0 {
		maxWorkers = DefaultWorkers
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		tasks:     make(map[string]*model.Task),
		workers:   make(chan struct{}, maxWorkers),
		stopChan:  make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
		metrics:   NewMetrics(),
		retention: DefaultRetention,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start launches the periodic cleanup of finished tasks.
func (m *Manager) Start() {
	m.logger.Info("task manager started", zap.Int("workers", cap(m.workers)))

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.cleanupRoutine()
	}()
}

// Stop cancels running tasks and waits for every goroutine to return.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		m.stopped = true
		m.mu.Unlock()
		close(m.stopChan)
		m.cancel()
	})
	m.wg.Wait()
	m.logger.Info("task manager stopped")
}

// Create registers a pending task and returns its id.
func (m *Manager) Create(taskType model.TaskType, target string, metadata map[string]string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	task := &model.Task{
		ID:        uuid.New().String(),
		Type:      taskType,
		Status:    model.TaskStatusPending,
		Target:    target,
		CreatedAt: time.Now(),
		Metadata:  metadata,
	}
	m.tasks[task.ID] = task
	m.metrics.RecordCreated(taskType)

	m.logger.Debug("task created",
		zap.String(logger.FieldTaskID, task.ID),
		zap.String("type", string(taskType)),
		zap.String("target", target))
	return task.ID
}

// Submit creates a task and schedules fn for it.
func (m *Manager) Submit(taskType model.TaskType, target string, metadata map[string]string, fn Func) (string, error) {
	id := m.Create(taskType, target, metadata)
	if err := m.Execute(id, fn); err != nil {
		return id, err
	}
	return id, nil
}

// Execute schedules fn for a pending task. The task stays pending until a
// worker slot frees up; it is cancelled if the manager stops first.
func (m *Manager) Execute(taskID string, fn Func) error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		m.setStatus(taskID, model.TaskStatusCancelled, "task manager shutting down")
		return fmt.Errorf("task manager is shutting down")
	}
	task, exists := m.tasks[taskID]
	if !exists {
		m.mu.Unlock()
		return errors.NewTaskNotFoundError(taskID)
	}
	status, taskType := task.Status, task.Type
	if status != model.TaskStatusPending {
		m.mu.Unlock()
		return fmt.Errorf("task with ID '%s' is not in pending status (current: %s)", taskID, status)
	}
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()

		select {
		case m.workers <- struct{}{}:
		case <-m.stopChan:
			m.setStatus(taskID, model.TaskStatusCancelled, "task manager shutting down")
			return
		}
		defer func() { <-m.workers }()

		m.setStatus(taskID, model.TaskStatusRunning, "")
		start := time.Now()
		err := m.run(taskID, fn)
		elapsed := time.Since(start)

		log := m.logger.With(zap.String(logger.FieldTaskID, taskID), zap.Duration("elapsed", elapsed))
		switch {
		case err != nil && m.ctx.Err() != nil:
			m.setStatus(taskID, model.TaskStatusCancelled, err.Error())
			log.Warn("task cancelled", zap.Error(err))
		case err != nil:
			m.setStatus(taskID, model.TaskStatusFailed, err.Error())
			m.metrics.RecordFailed(taskType)
			log.Error("task failed", zap.Error(err))
		default:
			m.setStatus(taskID, model.TaskStatusCompleted, "")
			m.metrics.RecordCompleted(taskType, elapsed)
			log.Info("task completed")
		}
	}()

	return nil
}

func (m *Manager) run(taskID string, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn(m.ctx, func(current, total int, message string) {
		m.UpdateProgress(taskID, current, total, message)
	})
}

// Get returns a copy of the task.
func (m *Manager) Get(taskID string) (*model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, exists := m.tasks[taskID]
	if !exists {
		return nil, errors.NewTaskNotFoundError(taskID)
	}
	return copyTask(task), nil
}

// List returns the tasks for target (all targets when empty), optionally
// filtered by status, oldest first.
func (m *Manager) List(target string, status *model.TaskStatus) []*model.Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Task
	for _, task := range m.tasks {
		if target != "" && task.Target != target {
			continue
		}
		if status != nil && task.Status != *status {
			continue
		}
		result = append(result, copyTask(task))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (m *Manager) UpdateProgress(taskID string, current, total int, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.tasks[taskID]
	if !exists {
		return
	}
	if task.Progress == nil {
		task.Progress = &model.TaskProgress{}
	}
	task.Progress.Current = current
	task.Progress.Total = total
	task.Progress.Message = message
}

func (m *Manager) setStatus(taskID string, status model.TaskStatus, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, exists := m.tasks[taskID]
	if !exists {
		return
	}

	oldStatus := task.Status
	task.Status = status
	if errorMsg != "" {
		task.Error = errorMsg
	}

	now := time.Now()
	if status == model.TaskStatusRunning {
		task.StartedAt = &now
	}
	if task.IsFinished() {
		task.CompletedAt = &now
	}
	m.metrics.RecordStatusChange(oldStatus, status)
}

func (m *Manager) cleanupRoutine() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupOld(m.retention)
		case <-m.stopChan:
			return
		}
	}
}

// CleanupOld removes finished tasks that completed more than maxAge ago and
// returns how many were removed.
func (m *Manager) CleanupOld(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0
	for id, task := range m.tasks {
		if task.CompletedAt != nil && task.CompletedAt.Before(cutoff) {
			delete(m.tasks, id)
			cleaned++
		}
	}
	if cleaned > 0 {
		m.logger.Info("cleaned up finished tasks", zap.Int("count", cleaned))
	}
	return cleaned
}

func (m *Manager) Metrics() MetricsData {
	return m.metrics.Snapshot()
}

func copyTask(task *model.Task) *model.Task {
	c := *task
	if task.Progress != nil {
		p := *task.Progress
		c.Progress = &p
	}
	if task.Metadata != nil {
		c.Metadata = make(map[string]string, len(task.Metadata))
		for k, v := range task.Metadata {
			c.Metadata[k] = v
		}
	}
	return &c
}

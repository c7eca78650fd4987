package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrDimensionMismatch is returned when two vectors of different length are compared
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrConfiguration is returned when ranking settings are rejected at construction
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDocumentNotFound is returned when a document is not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrTaskNotFound is returned when a background task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyApplied is returned when a seeker applies twice to the same posting
	ErrAlreadyApplied = errors.New("already applied")

	// ErrJobClosed is returned when applying to a posting that no longer accepts applications
	ErrJobClosed = errors.New("job posting is closed")
)

// DimensionMismatchError carries both vector lengths.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

// NewDimensionMismatchError creates a new DimensionMismatchError
func NewDimensionMismatchError(expected, actual int) *DimensionMismatchError {
	return &DimensionMismatchError{Expected: expected, Actual: actual}
}

// ConfigurationError represents a rejected setting
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{Field: field, Message: message}
}

// DocumentNotFoundError represents a document not found error with context
type DocumentNotFoundError struct {
	DocumentID string
	Collection string
}

func (e *DocumentNotFoundError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("document with ID '%s' not found in collection '%s'", e.DocumentID, e.Collection)
	}
	return fmt.Sprintf("document with ID '%s' not found", e.DocumentID)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError
func NewDocumentNotFoundError(documentID string, collection ...string) *DocumentNotFoundError {
	err := &DocumentNotFoundError{DocumentID: documentID}
	if len(collection) > 0 {
		err.Collection = collection[0]
	}
	return err
}

// TaskNotFoundError represents a task not found error with context
type TaskNotFoundError struct {
	TaskID string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task with ID '%s' not found", e.TaskID)
}

func (e *TaskNotFoundError) Is(target error) bool {
	return target == ErrTaskNotFound
}

// NewTaskNotFoundError creates a new TaskNotFoundError
func NewTaskNotFoundError(taskID string) *TaskNotFoundError {
	return &TaskNotFoundError{TaskID: taskID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AlreadyAppliedError is returned by the application workflow
type AlreadyAppliedError struct {
	JobID    string
	SeekerID string
}

func (e *AlreadyAppliedError) Error() string {
	return fmt.Sprintf("seeker '%s' has already applied to job '%s'", e.SeekerID, e.JobID)
}

func (e *AlreadyAppliedError) Is(target error) bool {
	return target == ErrAlreadyApplied
}

// NewAlreadyAppliedError creates a new AlreadyAppliedError
func NewAlreadyAppliedError(jobID, seekerID string) *AlreadyAppliedError {
	return &AlreadyAppliedError{JobID: jobID, SeekerID: seekerID}
}

// JobClosedError represents an application attempt against a non-open posting
type JobClosedError struct {
	JobID  string
	Status string
}

func (e *JobClosedError) Error() string {
	return fmt.Sprintf("job '%s' is not accepting applications (status '%s')", e.JobID, e.Status)
}

func (e *JobClosedError) Is(target error) bool {
	return target == ErrJobClosed
}

// NewJobClosedError creates a new JobClosedError
func NewJobClosedError(jobID, status string) *JobClosedError {
	return &JobClosedError{JobID: jobID, Status: status}
}

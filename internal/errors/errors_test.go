package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDimensionMismatchError(t *testing.T) {
	err := NewDimensionMismatchError(384, 300)

	expectedMsg := "vector dimension mismatch: expected 384, got 300"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrDimensionMismatch) {
		t.Error("Expected error to match ErrDimensionMismatch sentinel")
	}

	if errors.Is(err, ErrConfiguration) {
		t.Error("Error should not match ErrConfiguration")
	}
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("weights", "must sum to 1.0")

	expectedMsg := "configuration error for 'weights': must sum to 1.0"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	noField := NewConfigurationError("", "broken")
	if noField.Error() != "configuration error: broken" {
		t.Errorf("Unexpected message without field: '%s'", noField.Error())
	}

	if !errors.Is(err, ErrConfiguration) {
		t.Error("Expected error to match ErrConfiguration sentinel")
	}
}

func TestDocumentNotFoundError(t *testing.T) {
	err := NewDocumentNotFoundError("doc123")

	expectedMsg := "document with ID 'doc123' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	err2 := NewDocumentNotFoundError("doc123", "candidates")

	expectedMsg2 := "document with ID 'doc123' not found in collection 'candidates'"
	if err2.Error() != expectedMsg2 {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg2, err2.Error())
	}

	if !errors.Is(err, ErrDocumentNotFound) || !errors.Is(err2, ErrDocumentNotFound) {
		t.Error("Expected errors to match ErrDocumentNotFound sentinel")
	}
}

func TestTaskNotFoundError(t *testing.T) {
	err := NewTaskNotFoundError("task-456")

	expectedMsg := "task with ID 'task-456' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrTaskNotFound) {
		t.Error("Expected error to match ErrTaskNotFound sentinel")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("title", "is required")

	expectedMsg := "validation error for field 'title': is required"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	err2 := NewValidationError("", "general validation failure")
	if err2.Error() != "validation error: general validation failure" {
		t.Errorf("Unexpected message without field: '%s'", err2.Error())
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
}

func TestApplicationErrors(t *testing.T) {
	applied := NewAlreadyAppliedError("job-1", "seeker-1")
	if applied.Error() != "seeker 'seeker-1' has already applied to job 'job-1'" {
		t.Errorf("Unexpected message: '%s'", applied.Error())
	}
	if !errors.Is(applied, ErrAlreadyApplied) {
		t.Error("Expected error to match ErrAlreadyApplied sentinel")
	}

	closed := NewJobClosedError("job-1", "closed")
	if closed.Error() != "job 'job-1' is not accepting applications (status 'closed')" {
		t.Errorf("Unexpected message: '%s'", closed.Error())
	}
	if !errors.Is(closed, ErrJobClosed) {
		t.Error("Expected error to match ErrJobClosed sentinel")
	}
}

func TestWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("scoring candidate c1: %w", NewDimensionMismatchError(384, 128))
	if !errors.Is(wrapped, ErrDimensionMismatch) {
		t.Error("Expected wrapped error to match ErrDimensionMismatch sentinel")
	}

	var dimErr *DimensionMismatchError
	if !errors.As(wrapped, &dimErr) {
		t.Fatal("Expected errors.As to extract DimensionMismatchError")
	}
	if dimErr.Expected != 384 || dimErr.Actual != 128 {
		t.Errorf("Unexpected dimensions: %+v", dimErr)
	}
}

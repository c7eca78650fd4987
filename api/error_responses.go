package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/ShreekarSeelavantula/career-compass/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeDocumentNotFound ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrorCodeTaskNotFound     ErrorCode = "TASK_NOT_FOUND"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeAlreadyApplied   ErrorCode = "ALREADY_APPLIED"
	ErrorCodeJobClosed        ErrorCode = "JOB_CLOSED"

	// Server Error Codes (5xx)
	ErrorCodeInternalError         ErrorCode = "INTERNAL_ERROR"
	ErrorCodeConfiguration         ErrorCode = "CONFIGURATION_ERROR"
	ErrorCodeEmbeddingInconsistent ErrorCode = "EMBEDDING_INCONSISTENT"
	ErrorCodeScoringTimeout        ErrorCode = "SCORING_TIMEOUT"
	ErrorCodeTaskExecutionFailed   ErrorCode = "TASK_EXECUTION_FAILED"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendTaskExecutionError sends a standardized task scheduling error
func SendTaskExecutionError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeTaskExecutionFailed,
		"Failed to start "+operation+" task: "+err.Error())
}

// SendServiceError maps an error from the matching layer to a response.
func SendServiceError(c *gin.Context, operation string, err error) {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.DocumentNotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed",
			ErrorDetail{Field: validationErr.Field, Message: validationErr.Message, Code: "VALIDATION_ERROR"})
	case errors.As(err, &notFoundErr):
		SendError(c, http.StatusNotFound, ErrorCodeDocumentNotFound, err.Error())
	case errors.Is(err, apperrors.ErrTaskNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeTaskNotFound, err.Error())
	case errors.Is(err, apperrors.ErrAlreadyApplied):
		SendError(c, http.StatusConflict, ErrorCodeAlreadyApplied, err.Error())
	case errors.Is(err, apperrors.ErrJobClosed):
		SendError(c, http.StatusBadRequest, ErrorCodeJobClosed, err.Error())
	case errors.Is(err, apperrors.ErrDimensionMismatch):
		SendError(c, http.StatusInternalServerError, ErrorCodeEmbeddingInconsistent,
			"Stored embeddings are inconsistent during "+operation+": "+err.Error())
	case errors.Is(err, apperrors.ErrConfiguration):
		SendError(c, http.StatusInternalServerError, ErrorCodeConfiguration, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		SendError(c, http.StatusGatewayTimeout, ErrorCodeScoringTimeout,
			"Timed out during "+operation)
	default:
		SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
			"Internal error during "+operation+": "+err.Error())
	}
}

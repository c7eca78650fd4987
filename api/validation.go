// Package api provides the HTTP surface of the matching engine.
package api

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ShreekarSeelavantula/career-compass/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateID validates a path identifier
func ValidateID(field, id string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if id == "" {
		result.AddError(field, "ID is required")
		return result
	}

	if strings.TrimSpace(id) != id {
		result.AddError(field, "ID cannot have leading or trailing whitespace")
	}

	return result
}

// ValidateScoreRequest checks the parts of a score request that binding tags cannot express.
func ValidateScoreRequest(req *ScoreRequest, dimension int) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(req.CandidateText) == "" && len(req.CandidateEmbedding) == 0 {
		result.AddError("candidate_text", "Either candidate_text or candidate_embedding is required")
	}
	if strings.TrimSpace(req.JobText) == "" && len(req.JobEmbedding) == 0 {
		result.AddError("job_text", "Either job_text or job_embedding is required")
	}
	if n := len(req.CandidateEmbedding); n > 0 && n != dimension {
		result.AddError("candidate_embedding", fmt.Sprintf("Embedding must have %d dimensions, got %d", dimension, n))
	}
	if n := len(req.JobEmbedding); n > 0 && n != dimension {
		result.AddError("job_embedding", fmt.Sprintf("Embedding must have %d dimensions, got %d", dimension, n))
	}

	return result
}

// ValidateApplicationStatus checks a requested application status.
func ValidateApplicationStatus(status string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if !model.ValidApplicationStatus(model.ApplicationStatus(status)) {
		result.AddError("status", "Status must be one of: applied, screening, shortlisted, interviewed, offered, rejected")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding binds the request body and reports binding-tag failures per field.
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		addBindingErrors(result, "request_body", err)
	}

	return result
}

// ValidateQueryBinding validates query parameter binding
func ValidateQueryBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindQuery(target); err != nil {
		addBindingErrors(result, "query_parameters", err)
	}

	return result
}

func addBindingErrors(result *ValidationResult, fallbackField string, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.AddError(fallbackField, "Invalid "+strings.ReplaceAll(fallbackField, "_", " ")+": "+err.Error())
		return
	}
	for _, fe := range fieldErrs {
		result.AddError(toSnakeCase(fe.Field()), fmt.Sprintf("Failed '%s' validation", fe.Tag()))
	}
}

// toSnakeCase converts a Go field name to its JSON spelling, keeping
// acronyms together: SeekerID becomes seeker_id.
func toSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

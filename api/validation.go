// Package api provides validation utilities for API request handling.
package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/k4lab/go-cipher-search/config"
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

// ValidateCaseName validates a case name parameter
func ValidateCaseName(caseName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if caseName == "" {
		result.AddError("caseName", "Case name is required")
		return result
	}

	if strings.TrimSpace(caseName) != caseName {
		result.AddError("caseName", "Case name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateRunID validates a run ID parameter
func ValidateRunID(runID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if runID == "" {
		result.AddError("runId", "Run ID is required")
		return result
	}

	if strings.TrimSpace(runID) != runID {
		result.AddError("runId", "Run ID cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateCaseConfig validates a case configuration for creation. Defaults
// are applied before validation, so a minimal payload of name plus
// ciphertext passes with the full default grid. Anchor conflicts against the
// parsed ciphertext surface later, when the engine builds the constraint set.
func ValidateCaseConfig(cfg *config.CaseConfig) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if cfg == nil {
		result.AddError("case", "Case configuration is required")
		return result
	}

	cfg.ApplyDefaults()

	for _, conflict := range cfg.Validate() {
		result.AddError("case", conflict)
	}

	return result
}

// ValidateCaseSettings validates a settings update payload. Defaults are
// applied first so zeroed fields fall back instead of failing range checks.
func ValidateCaseSettings(settings *config.CaseSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Case settings are required")
		return result
	}

	settings.ApplyDefaults()

	for _, conflict := range settings.Validate() {
		result.AddError("settings", conflict)
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}

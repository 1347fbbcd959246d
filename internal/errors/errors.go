package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrCaseNotFound is returned when a case is not found
	ErrCaseNotFound = errors.New("case not found")

	// ErrCaseAlreadyExists is returned when trying to create a case that already exists
	ErrCaseAlreadyExists = errors.New("case already exists")

	// ErrRunNotFound is returned when a solution record is not found
	ErrRunNotFound = errors.New("run not found")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDomain is returned when a value falls outside its declared domain,
	// e.g. clock seconds out of range or conflicting plaintext constraints
	ErrInvalidDomain = errors.New("invalid domain")

	// ErrEmptyConstraintSet is returned when a search is requested without any
	// plaintext constraints to score against
	ErrEmptyConstraintSet = errors.New("empty constraint set")

	// ErrNoDiscriminatingModel is reported when no base formula satisfies a single
	// constraint without per-position corrections
	ErrNoDiscriminatingModel = errors.New("no discriminating base model")

	// ErrAmbiguousTie is reported when several parameter sets tie on every
	// ranking criterion
	ErrAmbiguousTie = errors.New("ambiguous tie between parameter sets")
)

// CaseNotFoundError represents a case not found error with context
type CaseNotFoundError struct {
	CaseName string
}

func (e *CaseNotFoundError) Error() string {
	return fmt.Sprintf("case named '%s' not found", e.CaseName)
}

func (e *CaseNotFoundError) Is(target error) bool {
	return target == ErrCaseNotFound
}

// NewCaseNotFoundError creates a new CaseNotFoundError
func NewCaseNotFoundError(caseName string) *CaseNotFoundError {
	return &CaseNotFoundError{CaseName: caseName}
}

// CaseAlreadyExistsError represents a case already exists error with context
type CaseAlreadyExistsError struct {
	CaseName string
}

func (e *CaseAlreadyExistsError) Error() string {
	return fmt.Sprintf("case named '%s' already exists", e.CaseName)
}

func (e *CaseAlreadyExistsError) Is(target error) bool {
	return target == ErrCaseAlreadyExists
}

// NewCaseAlreadyExistsError creates a new CaseAlreadyExistsError
func NewCaseAlreadyExistsError(caseName string) *CaseAlreadyExistsError {
	return &CaseAlreadyExistsError{CaseName: caseName}
}

// RunNotFoundError represents a solution record not found error with context
type RunNotFoundError struct {
	RunID    string
	CaseName string
}

func (e *RunNotFoundError) Error() string {
	if e.CaseName != "" {
		return fmt.Sprintf("run with ID '%s' not found in case '%s'", e.RunID, e.CaseName)
	}
	return fmt.Sprintf("run with ID '%s' not found", e.RunID)
}

func (e *RunNotFoundError) Is(target error) bool {
	return target == ErrRunNotFound
}

// NewRunNotFoundError creates a new RunNotFoundError
func NewRunNotFoundError(runID string, caseName ...string) *RunNotFoundError {
	err := &RunNotFoundError{RunID: runID}
	if len(caseName) > 0 {
		err.CaseName = caseName[0]
	}
	return err
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
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

// InvalidDomainError represents an out-of-domain value with context. It covers
// both malformed inputs (bad ciphertext symbols, clock seconds out of range)
// and internally inconsistent ones (two constraints claiming different
// plaintext at the same position).
type InvalidDomainError struct {
	Field  string
	Reason string
}

func (e *InvalidDomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid domain for '%s': %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid domain: %s", e.Reason)
}

func (e *InvalidDomainError) Is(target error) bool {
	return target == ErrInvalidDomain
}

// NewInvalidDomainError creates a new InvalidDomainError
func NewInvalidDomainError(field, reason string) *InvalidDomainError {
	return &InvalidDomainError{Field: field, Reason: reason}
}

package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound            = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists       = new(ErrCodeAlreadyExists, "resource already exists")
	ErrVersionConflict     = new(ErrCodeVersionConflict, "version conflict")
	ErrValidation          = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation    = new(ErrCodeInvalidOperation, "invalid operation")
	ErrIllegalTransition   = new(ErrCodeIllegalTransition, "illegal status transition")
	ErrTerminalState       = new(ErrCodeTerminalState, "entity is in a terminal state")
	ErrQuoteNotConvertible = new(ErrCodeQuoteNotConvertible, "quote cannot be converted")
	ErrDuplicatePolicy     = new(ErrCodeDuplicatePolicy, "a policy already exists for this quote")
	ErrAlreadyTerminal     = new(ErrCodeAlreadyTerminal, "lifecycle already terminated")
	ErrRenderFailure       = new(ErrCodeRenderFailure, "document rendering failed")
	ErrRegistryFailure     = new(ErrCodeRegistryFailure, "sequence registry failure")
	ErrPermissionDenied    = new(ErrCodePermissionDenied, "permission denied")
	ErrDatabase            = new(ErrCodeDatabase, "database error")
	ErrSystem              = new(ErrCodeSystemError, "system error")

	// maps errors to http status codes
	statusCodeMap = map[error]int{
		ErrNotFound:            http.StatusNotFound,
		ErrAlreadyExists:       http.StatusConflict,
		ErrVersionConflict:     http.StatusConflict,
		ErrValidation:          http.StatusBadRequest,
		ErrInvalidOperation:    http.StatusBadRequest,
		ErrIllegalTransition:   http.StatusConflict,
		ErrTerminalState:       http.StatusConflict,
		ErrQuoteNotConvertible: http.StatusConflict,
		ErrDuplicatePolicy:     http.StatusConflict,
		ErrAlreadyTerminal:     http.StatusConflict,
		ErrRenderFailure:       http.StatusInternalServerError,
		ErrRegistryFailure:     http.StatusInternalServerError,
		ErrPermissionDenied:    http.StatusForbidden,
		ErrDatabase:            http.StatusInternalServerError,
		ErrSystem:              http.StatusInternalServerError,
	}
)

const (
	ErrCodeNotFound            = "not_found"
	ErrCodeAlreadyExists       = "already_exists"
	ErrCodeVersionConflict     = "version_conflict"
	ErrCodeValidation          = "validation_error"
	ErrCodeInvalidOperation    = "invalid_operation"
	ErrCodeIllegalTransition   = "illegal_transition"
	ErrCodeTerminalState       = "terminal_state_violation"
	ErrCodeQuoteNotConvertible = "quote_not_convertible"
	ErrCodeDuplicatePolicy     = "duplicate_policy"
	ErrCodeAlreadyTerminal     = "already_terminal"
	ErrCodeRenderFailure       = "render_failure"
	ErrCodeRegistryFailure     = "registry_failure"
	ErrCodePermissionDenied    = "permission_denied"
	ErrCodeDatabase            = "database_error"
	ErrCodeSystemError         = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

// new creates a new InternalError
func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsVersionConflict checks if an error is a version conflict error
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsIllegalTransition checks if an error is an illegal transition error
func IsIllegalTransition(err error) bool {
	return errors.Is(err, ErrIllegalTransition)
}

// IsTerminalState checks if an error is a terminal state violation
func IsTerminalState(err error) bool {
	return errors.Is(err, ErrTerminalState)
}

// IsDatabase checks if an error is a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// HTTPStatusFromErr returns the http status code for a given error
func HTTPStatusFromErr(err error) int {
	for sentinel, code := range statusCodeMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return http.StatusInternalServerError
}

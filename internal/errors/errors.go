package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeFileSystem
	ErrorTypeTool
	ErrorTypeRequirement
	ErrorTypeDevice
	ErrorTypeNotFound
)

// String returns the string representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation:
		return "VALIDATION"
	case ErrorTypeFileSystem:
		return "FILESYSTEM"
	case ErrorTypeTool:
		return "TOOL"
	case ErrorTypeRequirement:
		return "REQUIREMENT"
	case ErrorTypeDevice:
		return "DEVICE"
	case ErrorTypeNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// PlatformError is an error with a type, a stable code and optional
// suggestions shown to the user.
type PlatformError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Suggestions []string
}

// Error implements the error interface
func (e *PlatformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *PlatformError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target
func (e *PlatformError) Is(target error) bool {
	if t, ok := target.(*PlatformError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithSuggestion adds a suggestion to the error
func (e *PlatformError) WithSuggestion(suggestion string) *PlatformError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// FormatDetailed returns a detailed error message with suggestions
func (e *PlatformError) FormatDetailed() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s Error [%s]: %s\n", e.Type.String(), e.Code, e.Message))

	if e.Cause != nil {
		builder.WriteString(fmt.Sprintf("\nUnderlying cause: %v\n", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		builder.WriteString("\nSuggestions:\n")
		for _, suggestion := range e.Suggestions {
			builder.WriteString(fmt.Sprintf("   - %s\n", suggestion))
		}
	}

	return builder.String()
}

// NewError creates a new PlatformError
func NewError(errorType ErrorType, code, message string) *PlatformError {
	return &PlatformError{
		Type:    errorType,
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with a PlatformError
func WrapError(err error, errorType ErrorType, code, message string) *PlatformError {
	return &PlatformError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NewValidationError creates a validation error. Validation errors are
// always reported before any filesystem mutation.
func NewValidationError(code, message string) *PlatformError {
	return NewError(ErrorTypeValidation, code, message).
		WithSuggestion("Check the input parameters and try again")
}

// NewFileSystemError creates a filesystem error
func NewFileSystemError(code, message string) *PlatformError {
	return NewError(ErrorTypeFileSystem, code, message).
		WithSuggestion("Check file permissions and that the path exists")
}

// NewToolError creates an external-tool failure. The message should carry
// the tool's raw diagnostic output.
func NewToolError(code, message string) *PlatformError {
	return NewError(ErrorTypeTool, code, message).
		WithSuggestion("Inspect the tool output above for the root cause")
}

// NewRequirementError creates an error for unsatisfied requirements blocking
// an operation. Individual requirement probes never error; this is raised
// only when a gated operation refuses to start.
func NewRequirementError(code, message string) *PlatformError {
	return NewError(ErrorTypeRequirement, code, message).
		WithSuggestion("Run 'cordova-android requirements' to see what is missing")
}

// NewDeviceError creates a device error
func NewDeviceError(code, message string) *PlatformError {
	return NewError(ErrorTypeDevice, code, message).
		WithSuggestion("Check device connection and USB debugging authorization")
}

// NewNotFoundError creates a not found error
func NewNotFoundError(code, message string) *PlatformError {
	return NewError(ErrorTypeNotFound, code, message).
		WithSuggestion("Verify the path or identifier")
}

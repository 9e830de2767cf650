package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Syntax errors (tag scanning and matching)
	ErrUnclosedTag          ErrorCode = "UNCLOSED_TAG"
	ErrMismatchedClosingTag ErrorCode = "MISMATCHED_CLOSING_TAG"
	ErrInvalidTagSyntax     ErrorCode = "INVALID_TAG_SYNTAX"
	ErrUnknownNamespace     ErrorCode = "UNKNOWN_NAMESPACE"

	// Resolution errors (registry lookup)
	ErrUnknownStyle     ErrorCode = "UNKNOWN_STYLE"
	ErrUnknownFrame     ErrorCode = "UNKNOWN_FRAME"
	ErrUnknownBadge     ErrorCode = "UNKNOWN_BADGE"
	ErrUnknownComponent ErrorCode = "UNKNOWN_COMPONENT"
	ErrUnknownSeparator ErrorCode = "UNKNOWN_SEPARATOR"
	ErrUnknownPartial   ErrorCode = "UNKNOWN_PARTIAL"
	ErrContextMismatch  ErrorCode = "CONTEXT_MISMATCH"

	// Semantic errors
	ErrUnsupportedChar       ErrorCode = "UNSUPPORTED_CHAR"
	ErrInvalidParameterValue ErrorCode = "INVALID_PARAMETER_VALUE"
	ErrInvalidColor          ErrorCode = "INVALID_COLOR"

	// Expansion errors
	ErrMissingRequiredArg     ErrorCode = "MISSING_REQUIRED_ARG"
	ErrComponentShapeMismatch ErrorCode = "COMPONENT_SHAPE_MISMATCH"
	ErrExpansionLimitExceeded ErrorCode = "EXPANSION_LIMIT_EXCEEDED"

	// Backend errors
	ErrBackend ErrorCode = "BACKEND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// GlyphError represents a structured error with code, offset and details.
// Offset is the byte offset of the offending tag in the source text, or -1
// when no source position applies (configuration errors, backend errors).
type GlyphError struct {
	Code        ErrorCode
	Message     string
	Offset      int
	Name        string
	Suggestions []string
	Details     map[string]interface{}
	Wrapped     error
}

// Error implements the error interface
func (e *GlyphError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " (at byte %d)", e.Offset)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	if e.Wrapped != nil {
		fmt.Fprintf(&b, ": %v", e.Wrapped)
	}
	return b.String()
}

// Unwrap implements the errors.Unwrap interface
func (e *GlyphError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *GlyphError) Is(target error) bool {
	var targetErr *GlyphError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new GlyphError with the given code and message
func New(code ErrorCode, message string) *GlyphError {
	return &GlyphError{
		Code:    code,
		Message: message,
		Offset:  -1,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new GlyphError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GlyphError {
	return &GlyphError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Offset:  -1,
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a GlyphError
func Wrap(err error, code ErrorCode, message string) *GlyphError {
	if err == nil {
		return nil
	}
	return &GlyphError{
		Code:    code,
		Message: message,
		Offset:  -1,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GlyphError {
	if err == nil {
		return nil
	}
	return &GlyphError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Offset:  -1,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithOffset records the byte offset of the offending tag
func (e *GlyphError) WithOffset(offset int) *GlyphError {
	e.Offset = offset
	return e
}

// WithName records the attempted name for resolution errors
func (e *GlyphError) WithName(name string) *GlyphError {
	e.Name = name
	return e
}

// WithSuggestions attaches a best-effort did-you-mean list
func (e *GlyphError) WithSuggestions(names []string) *GlyphError {
	e.Suggestions = names
	return e
}

// WithDetail adds a detail to the error
func (e *GlyphError) WithDetail(key string, value interface{}) *GlyphError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *GlyphError) WithDetails(details map[string]interface{}) *GlyphError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var gerr *GlyphError
	if errors.As(err, &gerr) {
		return gerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a GlyphError
func GetErrorCode(err error) ErrorCode {
	var gerr *GlyphError
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return ErrUnknown
}

// GetOffset returns the byte offset carried by an error, or -1
func GetOffset(err error) int {
	var gerr *GlyphError
	if errors.As(err, &gerr) {
		return gerr.Offset
	}
	return -1
}

// GetErrorDetails returns the details from an error, or nil if not a GlyphError
func GetErrorDetails(err error) map[string]interface{} {
	var gerr *GlyphError
	if errors.As(err, &gerr) {
		return gerr.Details
	}
	return nil
}

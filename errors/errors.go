package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation could succeed when run again.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// InvalidInput creates a new AppError for invalid user input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// NotFound creates a new AppError for a file that does not exist.
func NotFound(resource, path string) *AppError {
	details := map[string]any{"resource": resource}
	if path != "" {
		details["path"] = path
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		Details: details,
	}
}

// UnsupportedFormat creates a new AppError for an unhandled file extension.
func UnsupportedFormat(filename string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedFormat, Message: fmt.Sprintf("Unsupported audio format: %s", filename),
		Details: map[string]any{"file": filename},
	}
}

// InvalidConfig creates a new AppError for configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeConfigInvalid, Message: message}
}

// TranscodeFailed creates a new AppError for a failed decode/encode.
func TranscodeFailed(source string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTranscodeFailed, Message: "Audio conversion failed.",
		Details: map[string]any{"source": source}, Cause: cause,
	}
}

// ProbeFailed creates a new AppError for a failed duration probe.
func ProbeFailed(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeProbeFailed, Message: "Unable to determine audio duration.",
		Details: map[string]any{"path": path}, Cause: cause,
	}
}

// SplitFailed creates a new AppError for a chunk that could not be exported.
func SplitFailed(index int, cause error) *AppError {
	return &AppError{
		Code: ErrCodeSplitFailed, Message: fmt.Sprintf("Unable to export chunk %d.", index+1),
		Details: map[string]any{"chunk": index}, Cause: cause,
	}
}

// ExternalServiceError creates a new AppError for an error from an external service.
func ExternalServiceError(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Message: fmt.Sprintf("The %s service encountered an error.", service),
		Retryable: true, Details: map[string]any{"service": service}, Cause: cause,
	}
}

// RateLimited creates a new AppError for a quota or rate-limit rejection.
func RateLimited(service string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: fmt.Sprintf("The %s service rejected the request: quota or rate limit reached.", service),
		Retryable: true, Details: map[string]any{"service": service}, Cause: cause,
	}
}

// IOError creates a new AppError for a local filesystem failure.
func IOError(op, path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeIO, Message: fmt.Sprintf("Filesystem operation %q failed.", op),
		Details: map[string]any{"operation": op, "path": path}, Cause: cause,
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}

// Canceled creates a new AppError for an interrupted run.
func Canceled(cause error) *AppError {
	return &AppError{
		Code: ErrCodeCanceled, Message: "The operation was canceled.",
		Cause: cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether err is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// Wrap converts any error into an *AppError. AppErrors anywhere in the chain
// are returned as-is; anything else becomes an Internal error.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}

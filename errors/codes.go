package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the requested file was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeUnsupportedFormat indicates the file extension is not handled.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeConfigInvalid indicates the configuration failed validation.
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// Media errors
const (
	// ErrCodeTranscodeFailed indicates decoding or encoding the source failed.
	ErrCodeTranscodeFailed ErrorCode = "TRANSCODE_FAILED"
	// ErrCodeProbeFailed indicates the audio duration could not be determined.
	ErrCodeProbeFailed ErrorCode = "PROBE_FAILED"
	// ErrCodeSplitFailed indicates exporting a chunk failed.
	ErrCodeSplitFailed ErrorCode = "SPLIT_FAILED"
)

// External and internal errors
const (
	// ErrCodeExternalService indicates an error from the speech-to-text service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeRateLimited indicates the remote service rejected the call for quota reasons.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeIO indicates a local filesystem failure.
	ErrCodeIO ErrorCode = "IO_ERROR"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeCanceled indicates the run was interrupted before it finished.
	ErrCodeCanceled ErrorCode = "CANCELED"
)

// Nothing is retried automatically; Retryable only informs the message shown
// to the user.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeExternalService: true,
	ErrCodeRateLimited:     true,
	ErrCodeIO:              false,
	ErrCodeInternal:        false,
	ErrCodeCanceled:        false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
